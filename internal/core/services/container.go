package services

import (
	portsrepo "github.com/autoledger-in/tallybridge/internal/core/ports/repositories"
	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/platform/config"
)

// NewContainer creates the service container with properly initialized
// dependencies. The Tally client is constructed by the caller since it lives
// in the adapter layer.
func NewContainer(cfg *config.Config, tally portssvc.TallyClientSvc, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Tally: tally}

	container.Masters = NewMasterService(cfg.HomeStateCode)
	container.Vouchers = NewVoucherService(cfg.HomeStateCode, cfg.NarrationTag)
	container.Grouping = NewGroupingService()
	container.LedgerCache = NewLedgerCacheService(tally)

	var logRepo portsrepo.ImportLogRepository
	if repos != nil {
		logRepo = repos.ImportLogRepo
		container.Logs = NewImportLogService(repos.ImportLogRepo)
	}
	container.Importer = NewImportService(
		tally,
		container.Masters,
		container.Vouchers,
		container.LedgerCache,
		logRepo,
		cfg.BulkBatchSize,
	)
	return container
}
