package services

import (
	"context"

	"github.com/autoledger-in/tallybridge/internal/models"
)

// TallyClientSvc is the outbound port to the Tally Prime HTTP-XML gateway.
type TallyClientSvc interface {
	// CheckHealth verifies the gateway answers on its base URL.
	CheckHealth(ctx context.Context) error

	// FetchCompanies lists the companies currently open in Tally.
	FetchCompanies(ctx context.Context) ([]string, error)

	// FetchLedgerNames exports the ledger name list for a company. An empty
	// company targets whichever company is active.
	FetchLedgerNames(ctx context.Context, company string) ([]string, error)

	// Import posts a rendered envelope and parses Tally's created/altered/
	// error counters out of the response.
	Import(ctx context.Context, xml string) (models.ImportResult, error)

	// BaseURL reports the configured gateway address, for status responses.
	BaseURL() string
}
