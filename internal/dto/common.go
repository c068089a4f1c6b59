// Package dto defines the request and response shapes of the HTTP API.
// Amount fields bind through shopspring decimal so values survive the trip
// from JSON without float drift.
package dto

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse reports connectivity with the Tally gateway.
type StatusResponse struct {
	Connected bool   `json:"connected"`
	TallyURL  string `json:"tallyUrl"`
	Detail    string `json:"detail,omitempty"`
}

// CompaniesResponse lists the companies currently open in Tally.
type CompaniesResponse struct {
	Companies []string `json:"companies"`
}

// LedgersResponse lists the ledger names known in one company.
type LedgersResponse struct {
	Company string   `json:"company"`
	Ledgers []string `json:"ledgers"`
	Count   int      `json:"count"`
}
