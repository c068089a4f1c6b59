package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoledger-in/tallybridge/internal/core/services"
	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/normalize"
)

func saleRecord() models.TransactionRecord {
	return models.TransactionRecord{
		Date:        "15-04-2024",
		DocumentRef: "INV-1",
		PartyName:   "Bangalore Metals",
		PartyTaxID:  otherStateGSTIN,
		OwnTaxID:    ownGSTIN,
		Direction:   models.Sale,
		Lines: []models.LineItem{
			{TaxableAmount: d("90000"), TaxRate: d("18")},
		},
	}
}

func requirementNames(reqs []models.MasterRequirement) []string {
	names := make([]string, 0, len(reqs))
	for _, r := range reqs {
		names = append(names, r.Name)
	}
	return names
}

func TestAnalyzeRecordsInterstateSale(t *testing.T) {
	svc := services.NewMasterService("27")

	reqs, diags := svc.AnalyzeRecords(context.Background(), []models.TransactionRecord{saleRecord()}, models.NewLedgerSet())
	assert.Empty(t, diags)

	names := requirementNames(reqs)
	assert.Equal(t, []string{"Bangalore Metals", "Sale 18%", "Output IGST 18%"}, names)

	party := reqs[0]
	assert.Equal(t, models.PartyMaster, party.Kind)
	assert.Equal(t, models.GroupSundryDebtors, party.ParentGroup)
	assert.Equal(t, otherStateGSTIN, party.GSTIN)
	assert.True(t, party.GSTRegistered)
	assert.Equal(t, "Karnataka", party.StateName)
	assert.True(t, party.BillwiseTracking)

	duty := reqs[2]
	require.NotNil(t, duty.Tax)
	assert.Equal(t, models.IntegratedTax, duty.Tax.DutyHead)
	assert.Equal(t, "18", duty.Tax.Rate.String())
}

func TestAnalyzeRecordsIntrastateSplitsDuties(t *testing.T) {
	svc := services.NewMasterService("27")
	rec := saleRecord()
	rec.PartyTaxID = sameStateGSTIN

	reqs, _ := svc.AnalyzeRecords(context.Background(), []models.TransactionRecord{rec}, models.NewLedgerSet())
	names := requirementNames(reqs)
	assert.Contains(t, names, "Output CGST 9%")
	assert.Contains(t, names, "Output SGST 9%")
	assert.NotContains(t, names, "Output IGST 18%")
}

func TestAnalyzeRecordsFiltersExisting(t *testing.T) {
	svc := services.NewMasterService("27")
	existing := models.NewLedgerSet("Bangalore Metals", "Sale 18%", "Output IGST 18%")

	reqs, _ := svc.AnalyzeRecords(context.Background(), []models.TransactionRecord{saleRecord()}, existing)
	assert.Empty(t, reqs)
}

func TestAnalyzeRecordsDeduplicatesAcrossRecords(t *testing.T) {
	svc := services.NewMasterService("27")
	records := []models.TransactionRecord{saleRecord(), saleRecord()}

	reqs, _ := svc.AnalyzeRecords(context.Background(), records, models.NewLedgerSet())
	assert.Len(t, reqs, 3)
}

func TestAnalyzeRecordsDeterministicOrder(t *testing.T) {
	svc := services.NewMasterService("27")
	records := []models.TransactionRecord{saleRecord()}

	first, _ := svc.AnalyzeRecords(context.Background(), records, models.NewLedgerSet())
	second, _ := svc.AnalyzeRecords(context.Background(), records, models.NewLedgerSet())
	assert.Equal(t, first, second)
}

func TestAnalyzeRecordsRoundOffRequirement(t *testing.T) {
	svc := services.NewMasterService("27")
	rec := saleRecord()
	rec.Lines = []models.LineItem{{TaxableAmount: d("100.30")}}

	reqs, _ := svc.AnalyzeRecords(context.Background(), []models.TransactionRecord{rec}, models.NewLedgerSet())
	names := requirementNames(reqs)
	assert.Contains(t, names, models.RoundOffLedgerName)
}

func TestAnalyzeRecordsMissingPartyName(t *testing.T) {
	svc := services.NewMasterService("27")
	rec := saleRecord()
	rec.PartyName = ""

	reqs, diags := svc.AnalyzeRecords(context.Background(), []models.TransactionRecord{rec}, models.NewLedgerSet())
	assert.Equal(t, normalize.FallbackName, reqs[0].Name)
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "missing party name")
}

func TestAnalyzeBank(t *testing.T) {
	svc := services.NewMasterService("27")
	stmt := models.BankStatement{
		BankLedgerName: "HDFC Bank",
		Transactions: []models.BankTransaction{
			{Description: "Rent", Withdrawal: d("1000"), ContraLedger: "Office Rent", Direction: models.Payment},
			{Description: "Unknown", Withdrawal: d("50"), Direction: models.Payment},
		},
	}

	reqs := svc.AnalyzeBank(context.Background(), stmt, models.NewLedgerSet("Office Rent"))
	names := requirementNames(reqs)
	assert.Contains(t, names, "HDFC Bank")
	assert.Contains(t, names, models.SuspenseLedgerName)
	assert.NotContains(t, names, "Office Rent")

	for _, r := range reqs {
		if r.Name == "HDFC Bank" {
			assert.Equal(t, models.BankMaster, r.Kind)
			assert.Equal(t, models.GroupBankAccounts, r.ParentGroup)
		}
	}
}
