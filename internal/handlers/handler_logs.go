package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/dto"
	"github.com/autoledger-in/tallybridge/internal/middleware"
)

// logHandler reads the import audit trail.
type logHandler struct {
	logs portssvc.ImportLogSvc
}

func newLogHandler(logs portssvc.ImportLogSvc) *logHandler {
	return &logHandler{logs: logs}
}

// listLogs godoc
// @Summary List recent import attempts
// @Tags logs
// @Produce json
// @Param limit query int false "Maximum rows to return" default(50)
// @Success 200 {object} dto.ListLogsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /logs [get]
func (h *logHandler) listLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listLogs", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	logs, err := h.logs.ListLogs(c.Request.Context(), params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list import logs")
		return
	}
	c.JSON(http.StatusOK, dto.ListLogsResponse{Logs: logs})
}

// registerLogRoutes registers the audit trail route when persistence is
// configured.
func registerLogRoutes(group *gin.RouterGroup, logs portssvc.ImportLogSvc) {
	if logs == nil {
		return
	}
	h := newLogHandler(logs)
	group.GET("/logs", h.listLogs)
}
