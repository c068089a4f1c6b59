package services

import (
	"context"

	portsrepo "github.com/autoledger-in/tallybridge/internal/core/ports/repositories"
	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/models"
)

// importLogService exposes the audit trail read path.
type importLogService struct {
	repo portsrepo.ImportLogRepository
}

// NewImportLogService creates the audit trail reader.
func NewImportLogService(repo portsrepo.ImportLogRepository) portssvc.ImportLogSvc {
	return &importLogService{repo: repo}
}

var _ portssvc.ImportLogSvc = (*importLogService)(nil)

const defaultLogLimit = 50

func (s *importLogService) ListLogs(ctx context.Context, limit int) ([]models.ImportLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return s.repo.List(ctx, limit)
}
