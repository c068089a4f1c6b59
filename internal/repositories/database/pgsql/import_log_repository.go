package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autoledger-in/tallybridge/internal/apperrors"
	portsrepo "github.com/autoledger-in/tallybridge/internal/core/ports/repositories"
	"github.com/autoledger-in/tallybridge/internal/models"
)

// PgxImportLogRepository persists the import audit trail.
type PgxImportLogRepository struct {
	BaseRepository
}

// newPgxImportLogRepository creates a new instance of PgxImportLogRepository.
func newPgxImportLogRepository(db *pgxpool.Pool) portsrepo.ImportLogRepository {
	return &PgxImportLogRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const (
	importLogsTable = "import_logs"

	selectImportLogFields = `
		import_log_id, company, kind, voucher_count, status, message,
		response_snippet, created_at
	`

	insertImportLogQuery = `
		INSERT INTO ` + importLogsTable + ` (
			import_log_id, company, kind, voucher_count, status, message,
			response_snippet, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	listImportLogsQuery = `
		SELECT ` + selectImportLogFields + `
		FROM ` + importLogsTable + `
		ORDER BY created_at DESC
		LIMIT $1
	`
)

func (r *PgxImportLogRepository) Create(ctx context.Context, log *models.ImportLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	_, err := r.Pool.Exec(ctx, insertImportLogQuery,
		log.ImportLogID,
		log.Company,
		log.Kind,
		log.VoucherCount,
		log.Status,
		log.Message,
		log.ResponseSnippet,
		log.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert import log", err)
	}
	return nil
}

func (r *PgxImportLogRepository) List(ctx context.Context, limit int) ([]models.ImportLog, error) {
	rows, err := r.Pool.Query(ctx, listImportLogsQuery, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list import logs", err)
	}
	defer rows.Close()

	var logs []models.ImportLog
	for rows.Next() {
		var log models.ImportLog
		if err := rows.Scan(
			&log.ImportLogID,
			&log.Company,
			&log.Kind,
			&log.VoucherCount,
			&log.Status,
			&log.Message,
			&log.ResponseSnippet,
			&log.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan import log", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read import logs", err)
	}
	return logs, nil
}
