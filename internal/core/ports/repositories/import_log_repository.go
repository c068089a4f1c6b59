package repositories

import (
	"context"

	"github.com/autoledger-in/tallybridge/internal/models"
)

// ImportLogRepository defines the interface for import audit persistence.
type ImportLogRepository interface {
	// Create persists one import attempt.
	Create(ctx context.Context, log *models.ImportLog) error

	// List retrieves the most recent attempts, newest first.
	List(ctx context.Context, limit int) ([]models.ImportLog, error)
}
