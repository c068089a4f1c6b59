package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/autoledger-in/tallybridge/internal/apperrors"
	"github.com/autoledger-in/tallybridge/internal/core/services"
	"github.com/autoledger-in/tallybridge/internal/models"
)

// MockImportLogRepository is a mock type for the ImportLogRepository
// interface
type MockImportLogRepository struct {
	mock.Mock
}

func (m *MockImportLogRepository) Create(ctx context.Context, log *models.ImportLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockImportLogRepository) List(ctx context.Context, limit int) ([]models.ImportLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ImportLog), args.Error(1)
}

func TestBuildRecordsXMLProducesEnvelope(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "").Return([]string{}, nil)

	masters := services.NewMasterService("27")
	vouchers := services.NewVoucherService("27", "")
	cache := services.NewLedgerCacheService(mockTally)
	importer := services.NewImportService(mockTally, masters, vouchers, cache, nil, 50)

	resp, err := importer.BuildRecordsXML(context.Background(), "", []models.TransactionRecord{saleRecord()}, false)
	require.NoError(t, err)

	assert.Contains(t, resp.XML, "<ENVELOPE>")
	assert.Contains(t, resp.XML, "<TALLYREQUEST>Import Data</TALLYREQUEST>")
	assert.Contains(t, resp.XML, `<LEDGER NAME="Bangalore Metals" ACTION="Alter">`)
	assert.Contains(t, resp.XML, "<VOUCHERNUMBER>INV-1</VOUCHERNUMBER>")
	require.Len(t, resp.Vouchers, 1)
	assert.Len(t, resp.Masters, 3)
}

func TestBuildRecordsXMLSkipsExistingMasters(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "").
		Return([]string{"Bangalore Metals", "Sale 18%", "Output IGST 18%"}, nil)

	masters := services.NewMasterService("27")
	vouchers := services.NewVoucherService("27", "")
	cache := services.NewLedgerCacheService(mockTally)
	importer := services.NewImportService(mockTally, masters, vouchers, cache, nil, 50)

	resp, err := importer.BuildRecordsXML(context.Background(), "", []models.TransactionRecord{saleRecord()}, false)
	require.NoError(t, err)
	assert.Empty(t, resp.Masters)
}

func TestImportRecordsSuccessWritesAuditRow(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "").Return([]string{}, nil)
	mockTally.On("Import", mock.Anything, mock.Anything).
		Return(models.ImportResult{Created: 4}, nil).Once()

	mockRepo := new(MockImportLogRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(log *models.ImportLog) bool {
		return log.Status == models.ImportSucceeded && log.Kind == models.ExcelImport && log.VoucherCount == 1
	})).Return(nil).Once()

	masters := services.NewMasterService("27")
	vouchers := services.NewVoucherService("27", "")
	cache := services.NewLedgerCacheService(mockTally)
	importer := services.NewImportService(mockTally, masters, vouchers, cache, mockRepo, 50)

	resp, err := importer.ImportRecords(context.Background(), "", models.ExcelImport, []models.TransactionRecord{saleRecord()}, false)
	require.NoError(t, err)
	assert.Equal(t, models.ImportSucceeded, resp.Status)
	assert.Equal(t, 4, resp.Result.Created)

	mockTally.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestImportRecordsBatchesAndReusesMasters(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "").Return([]string{}, nil)

	var sentEnvelopes []string
	mockTally.On("Import", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sentEnvelopes = append(sentEnvelopes, args.String(1))
		}).
		Return(models.ImportResult{Created: 1}, nil).Twice()

	mockRepo := new(MockImportLogRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	masters := services.NewMasterService("27")
	vouchers := services.NewVoucherService("27", "")
	cache := services.NewLedgerCacheService(mockTally)
	importer := services.NewImportService(mockTally, masters, vouchers, cache, mockRepo, 1)

	recs := []models.TransactionRecord{saleRecord(), saleRecord()}
	resp, err := importer.ImportRecords(context.Background(), "", models.ExcelImport, recs, false)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Result.Created)

	require.Len(t, sentEnvelopes, 2)
	assert.Contains(t, sentEnvelopes[0], `<LEDGER NAME="Bangalore Metals"`)
	// The second chunk must not re-emit masters the first chunk created.
	assert.NotContains(t, sentEnvelopes[1], `<LEDGER NAME="Bangalore Metals"`)

	mockTally.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestImportRecordsTallyRejection(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "").Return([]string{}, nil)
	mockTally.On("Import", mock.Anything, mock.Anything).
		Return(models.ImportResult{Errors: 2, LineErrors: []string{"Ledger does not exist"}}, nil).Once()

	mockRepo := new(MockImportLogRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(log *models.ImportLog) bool {
		return log.Status == models.ImportFailed
	})).Return(nil).Once()

	masters := services.NewMasterService("27")
	vouchers := services.NewVoucherService("27", "")
	cache := services.NewLedgerCacheService(mockTally)
	importer := services.NewImportService(mockTally, masters, vouchers, cache, mockRepo, 50)

	resp, err := importer.ImportRecords(context.Background(), "", models.ExcelImport, []models.TransactionRecord{saleRecord()}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTallyRejected)
	require.NotNil(t, resp)
	assert.Equal(t, models.ImportFailed, resp.Status)

	mockRepo.AssertExpectations(t)
}

func TestImportBank(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "").Return([]string{}, nil)
	mockTally.On("Import", mock.Anything, mock.MatchedBy(func(xml string) bool {
		return len(xml) > 0
	})).Return(models.ImportResult{Created: 2}, nil).Once()

	mockRepo := new(MockImportLogRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(log *models.ImportLog) bool {
		return log.Kind == models.BankImport && log.Status == models.ImportSucceeded
	})).Return(nil).Once()

	masters := services.NewMasterService("27")
	vouchers := services.NewVoucherService("27", "")
	cache := services.NewLedgerCacheService(mockTally)
	importer := services.NewImportService(mockTally, masters, vouchers, cache, mockRepo, 50)

	stmt := models.BankStatement{
		BankLedgerName: "HDFC Bank",
		Transactions: []models.BankTransaction{
			{Date: "02-04-2024", Description: "Rent", Withdrawal: d("15000"), ContraLedger: "Office Rent", Direction: models.Payment},
			{Date: "03-04-2024", Description: "UPI", Deposit: d("2000"), ContraLedger: "Sales Collection", Direction: models.Receipt},
		},
	}
	resp, err := importer.ImportBank(context.Background(), "", stmt)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Result.Created)

	mockTally.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}
