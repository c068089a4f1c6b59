package dto

import "github.com/autoledger-in/tallybridge/internal/models"

// AnalyzeMastersRequest asks which masters a batch of records would need.
// ExistingLedgers, when provided, suppresses requirements the caller already
// knows exist; otherwise the server consults its ledger cache for Company.
type AnalyzeMastersRequest struct {
	Company         string                     `json:"company"`
	Records         []models.TransactionRecord `json:"records" binding:"required,min=1"`
	ExistingLedgers []string                   `json:"existingLedgers"`
}

// AnalyzeMastersResponse lists the masters that must be created before the
// batch can import cleanly.
type AnalyzeMastersResponse struct {
	Requirements []models.MasterRequirement `json:"requirements"`
	Diagnostics  []string                   `json:"diagnostics,omitempty"`
}
