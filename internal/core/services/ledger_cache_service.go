package services

import (
	"context"
	"log/slog"
	"sync"

	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/middleware"
	"github.com/autoledger-in/tallybridge/internal/models"
)

// ledgerCacheService is a read-through cache over the Tally ledger export,
// keyed by company. One export per company per process lifetime unless a
// caller refreshes; names created by this process are added locally.
type ledgerCacheService struct {
	tally portssvc.TallyClientSvc

	mu   sync.Mutex
	sets map[string]models.LedgerSet
}

// NewLedgerCacheService creates the ledger-existence cache.
func NewLedgerCacheService(tally portssvc.TallyClientSvc) portssvc.LedgerCacheSvc {
	return &ledgerCacheService{
		tally: tally,
		sets:  make(map[string]models.LedgerSet),
	}
}

var _ portssvc.LedgerCacheSvc = (*ledgerCacheService)(nil)

func (s *ledgerCacheService) Known(ctx context.Context, company string) (models.LedgerSet, error) {
	s.mu.Lock()
	set, ok := s.sets[company]
	s.mu.Unlock()
	if ok {
		return set.Clone(), nil
	}
	return s.Refresh(ctx, company)
}

func (s *ledgerCacheService) Refresh(ctx context.Context, company string) (models.LedgerSet, error) {
	names, err := s.tally.FetchLedgerNames(ctx, company)
	if err != nil {
		return nil, err
	}
	set := models.NewLedgerSet(names...)

	s.mu.Lock()
	s.sets[company] = set
	s.mu.Unlock()

	middleware.GetLoggerFromCtx(ctx).Debug("Refreshed ledger cache",
		slog.String("company", company),
		slog.Int("ledgers", len(set)),
	)
	return set.Clone(), nil
}

func (s *ledgerCacheService) MarkCreated(company string, names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[company]
	if !ok {
		// Nothing cached yet; the next Known() will fetch the truth
		// from Tally, which now includes these names anyway.
		return
	}
	for _, n := range names {
		set.Add(n)
	}
}
