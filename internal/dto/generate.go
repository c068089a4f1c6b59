package dto

import "github.com/autoledger-in/tallybridge/internal/models"

// GenerateInvoiceRequest carries one normalized document for the
// single-invoice path.
type GenerateInvoiceRequest struct {
	Company string                   `json:"company"`
	Record  models.TransactionRecord `json:"record" binding:"required"`
}

// GenerateBulkRequest carries a batch of records, typically the output of
// spreadsheet grouping.
type GenerateBulkRequest struct {
	Company string                     `json:"company"`
	Records []models.TransactionRecord `json:"records" binding:"required,min=1"`
}

// GenerateBankRequest carries a mapped bank statement.
type GenerateBankRequest struct {
	Company   string               `json:"company"`
	Statement models.BankStatement `json:"statement" binding:"required"`
}

// GenerateResponse returns the rendered XML plus everything that went into
// it, so callers can preview before importing.
type GenerateResponse struct {
	XML         string                     `json:"xml"`
	Vouchers    []models.VoucherPayload    `json:"vouchers"`
	Masters     []models.MasterRequirement `json:"masters"`
	Diagnostics []string                   `json:"diagnostics,omitempty"`
}

// ImportResponse reports the outcome of pushing a generated batch to Tally.
type ImportResponse struct {
	Result      models.ImportResult `json:"result"`
	Status      models.ImportStatus `json:"status"`
	LogID       string              `json:"logId,omitempty"`
	Diagnostics []string            `json:"diagnostics,omitempty"`
}
