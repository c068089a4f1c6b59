package models

import "time"

// ImportKind classifies what an import attempt carried.
type ImportKind string

const (
	InvoiceImport ImportKind = "INVOICE"
	ExcelImport   ImportKind = "EXCEL"
	BankImport    ImportKind = "BANK"
	MastersImport ImportKind = "MASTERS"
)

// ImportStatus is the recorded outcome of one push to Tally.
type ImportStatus string

const (
	ImportSucceeded ImportStatus = "SUCCESS"
	ImportFailed    ImportStatus = "FAILED"
)

// ImportLog is one row of the import audit trail.
type ImportLog struct {
	ImportLogID     string       `db:"import_log_id"`
	Company         string       `db:"company"`
	Kind            ImportKind   `db:"kind"`
	VoucherCount    int          `db:"voucher_count"`
	Status          ImportStatus `db:"status"`
	Message         string       `db:"message"`
	ResponseSnippet string       `db:"response_snippet"`
	CreatedAt       time.Time    `db:"created_at"`
}
