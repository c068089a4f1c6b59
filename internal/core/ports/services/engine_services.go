package services

import (
	"context"

	"github.com/autoledger-in/tallybridge/internal/models"
)

// MasterAnalyzerSvc derives the masters a batch of records depends on.
type MasterAnalyzerSvc interface {
	// AnalyzeRecords walks the records and returns every master missing
	// from existing, deduplicated and in deterministic order. Diagnostics
	// name fields that were silently defaulted.
	AnalyzeRecords(ctx context.Context, records []models.TransactionRecord, existing models.LedgerSet) ([]models.MasterRequirement, []string)

	// AnalyzeBank returns the bank ledger and contra ledgers a statement
	// needs.
	AnalyzeBank(ctx context.Context, stmt models.BankStatement, existing models.LedgerSet) []models.MasterRequirement
}

// VoucherAssemblerSvc turns normalized records into balanced vouchers.
type VoucherAssemblerSvc interface {
	// AssembleInvoice builds one invoice voucher with inventory lines.
	AssembleInvoice(ctx context.Context, rec models.TransactionRecord) (models.VoucherPayload, []string, error)

	// AssembleBulk builds accounting vouchers for a batch of records.
	AssembleBulk(ctx context.Context, recs []models.TransactionRecord) ([]models.VoucherPayload, []string, error)

	// AssembleBank builds payment/receipt/contra vouchers for a statement.
	AssembleBank(ctx context.Context, stmt models.BankStatement) ([]models.VoucherPayload, []string, error)
}

// RowGrouperSvc merges flat spreadsheet rows into logical vouchers.
type RowGrouperSvc interface {
	// GroupRows clusters rows by invoice, party and date. It returns the
	// grouped vouchers, the number of rows rejected as unusable, and
	// diagnostics for every defaulted field.
	GroupRows(ctx context.Context, rows []models.ExcelRow) ([]models.ExcelVoucher, int, []string)
}

// LedgerCacheSvc answers "which ledgers already exist" without a round trip
// per request.
type LedgerCacheSvc interface {
	// Known returns the cached ledger set for a company, fetching from
	// Tally on first use.
	Known(ctx context.Context, company string) (models.LedgerSet, error)

	// Refresh discards the cached set and refetches.
	Refresh(ctx context.Context, company string) (models.LedgerSet, error)

	// MarkCreated records names this process just created, so later
	// batches in the same session do not re-emit their masters.
	MarkCreated(company string, names ...string)
}
