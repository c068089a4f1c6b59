package dto

import "github.com/autoledger-in/tallybridge/internal/models"

// GroupRowsRequest submits already-parsed rows for grouping, for callers
// that parse spreadsheets themselves.
type GroupRowsRequest struct {
	Rows []models.ExcelRow `json:"rows" binding:"required,min=1"`
}

// ParseExcelResponse returns the rows read from an uploaded workbook and the
// vouchers they group into.
type ParseExcelResponse struct {
	Rows        []models.ExcelRow     `json:"rows"`
	Vouchers    []models.ExcelVoucher `json:"vouchers"`
	Skipped     int                   `json:"skipped"`
	Diagnostics []string              `json:"diagnostics,omitempty"`
}
