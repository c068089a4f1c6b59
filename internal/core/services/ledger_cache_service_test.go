package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/autoledger-in/tallybridge/internal/core/services"
	"github.com/autoledger-in/tallybridge/internal/models"
)

// MockTallyClient is a mock type for the TallyClientSvc interface
type MockTallyClient struct {
	mock.Mock
}

func (m *MockTallyClient) CheckHealth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTallyClient) FetchCompanies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTallyClient) FetchLedgerNames(ctx context.Context, company string) ([]string, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTallyClient) Import(ctx context.Context, xml string) (models.ImportResult, error) {
	args := m.Called(ctx, xml)
	return args.Get(0).(models.ImportResult), args.Error(1)
}

func (m *MockTallyClient) BaseURL() string {
	args := m.Called()
	return args.String(0)
}

func TestLedgerCacheFetchesOnce(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "Acme").
		Return([]string{"Cash", "Sale 18%"}, nil).Once()

	cache := services.NewLedgerCacheService(mockTally)

	set, err := cache.Known(context.Background(), "Acme")
	require.NoError(t, err)
	assert.True(t, set.Has("Cash"))

	// Second call must come from the cache.
	set, err = cache.Known(context.Background(), "Acme")
	require.NoError(t, err)
	assert.True(t, set.Has("Sale 18%"))

	mockTally.AssertExpectations(t)
}

func TestLedgerCacheRefreshRefetches(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "Acme").
		Return([]string{"Cash"}, nil).Once()
	mockTally.On("FetchLedgerNames", mock.Anything, "Acme").
		Return([]string{"Cash", "New Ledger"}, nil).Once()

	cache := services.NewLedgerCacheService(mockTally)

	_, err := cache.Known(context.Background(), "Acme")
	require.NoError(t, err)

	set, err := cache.Refresh(context.Background(), "Acme")
	require.NoError(t, err)
	assert.True(t, set.Has("New Ledger"))

	mockTally.AssertExpectations(t)
}

func TestLedgerCacheMarkCreated(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "Acme").
		Return([]string{"Cash"}, nil).Once()

	cache := services.NewLedgerCacheService(mockTally)

	_, err := cache.Known(context.Background(), "Acme")
	require.NoError(t, err)

	cache.MarkCreated("Acme", "Output IGST 18%")

	set, err := cache.Known(context.Background(), "Acme")
	require.NoError(t, err)
	assert.True(t, set.Has("Output IGST 18%"))

	mockTally.AssertExpectations(t)
}

func TestLedgerCachePerCompanyIsolation(t *testing.T) {
	mockTally := new(MockTallyClient)
	mockTally.On("FetchLedgerNames", mock.Anything, "A").Return([]string{"Only In A"}, nil).Once()
	mockTally.On("FetchLedgerNames", mock.Anything, "B").Return([]string{"Only In B"}, nil).Once()

	cache := services.NewLedgerCacheService(mockTally)

	setA, err := cache.Known(context.Background(), "A")
	require.NoError(t, err)
	setB, err := cache.Known(context.Background(), "B")
	require.NoError(t, err)

	assert.True(t, setA.Has("Only In A"))
	assert.False(t, setA.Has("Only In B"))
	assert.True(t, setB.Has("Only In B"))

	mockTally.AssertExpectations(t)
}
