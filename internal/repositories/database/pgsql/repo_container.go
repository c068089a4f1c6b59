package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/autoledger-in/tallybridge/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	importLogRepo := newPgxImportLogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ImportLogRepo: importLogRepo,
	}
}
