package dto

import "github.com/autoledger-in/tallybridge/internal/models"

// ListLogsParams filters the import audit trail.
type ListLogsParams struct {
	Limit int `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
}

// ListLogsResponse returns recent import attempts, newest first.
type ListLogsResponse struct {
	Logs []models.ImportLog `json:"logs"`
}
