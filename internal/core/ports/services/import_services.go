package services

import (
	"context"

	"github.com/autoledger-in/tallybridge/internal/dto"
	"github.com/autoledger-in/tallybridge/internal/models"
)

// ImporterSvc orchestrates the generate-then-push pipeline: assemble
// vouchers, derive missing masters, render the envelope and either return it
// or send it to Tally and record the outcome.
type ImporterSvc interface {
	// BuildRecordsXML renders the import envelope for a record batch
	// without sending it.
	BuildRecordsXML(ctx context.Context, company string, recs []models.TransactionRecord, invoice bool) (*dto.GenerateResponse, error)

	// BuildBankXML renders the envelope for a bank statement.
	BuildBankXML(ctx context.Context, company string, stmt models.BankStatement) (*dto.GenerateResponse, error)

	// ImportRecords pushes a record batch to Tally in size-bounded chunks
	// and writes one audit row for the attempt.
	ImportRecords(ctx context.Context, company string, kind models.ImportKind, recs []models.TransactionRecord, invoice bool) (*dto.ImportResponse, error)

	// ImportBank pushes a bank statement's vouchers to Tally.
	ImportBank(ctx context.Context, company string, stmt models.BankStatement) (*dto.ImportResponse, error)
}

// ImportLogSvc reads the import audit trail.
type ImportLogSvc interface {
	ListLogs(ctx context.Context, limit int) ([]models.ImportLog, error)
}
