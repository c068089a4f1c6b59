package models

// ImportResult is Tally's tally of what an import request achieved, parsed
// out of the response envelope.
type ImportResult struct {
	Created    int      `json:"created"`
	Altered    int      `json:"altered"`
	Errors     int      `json:"errors"`
	LineErrors []string `json:"lineErrors,omitempty"`
	// LastVoucher echoes the last object name Tally acknowledged, useful
	// when diagnosing a partial import.
	LastVoucher string `json:"lastVoucher,omitempty"`
}

// Failed reports whether Tally rejected any object in the batch.
func (r ImportResult) Failed() bool {
	return r.Errors > 0 || len(r.LineErrors) > 0
}
