package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/dto"
	"github.com/autoledger-in/tallybridge/internal/middleware"
	"github.com/autoledger-in/tallybridge/internal/models"
)

// masterHandler answers "which masters would this batch need".
type masterHandler struct {
	masters portssvc.MasterAnalyzerSvc
	cache   portssvc.LedgerCacheSvc
}

func newMasterHandler(masters portssvc.MasterAnalyzerSvc, cache portssvc.LedgerCacheSvc) *masterHandler {
	return &masterHandler{masters: masters, cache: cache}
}

// analyzeMasters godoc
// @Summary Analyze which masters a record batch requires
// @Tags masters
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeMastersRequest true "Records to analyze"
// @Success 200 {object} dto.AnalyzeMastersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /masters/analyze [post]
func (h *masterHandler) analyzeMasters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AnalyzeMastersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for analyzeMasters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format"})
		return
	}

	var existing models.LedgerSet
	var diagnostics []string
	if len(req.ExistingLedgers) > 0 {
		existing = models.NewLedgerSet(req.ExistingLedgers...)
	} else {
		var err error
		existing, err = h.cache.Known(c.Request.Context(), req.Company)
		if err != nil {
			logger.Warn("Ledger cache unavailable for analysis", slog.String("error", err.Error()))
			existing = models.NewLedgerSet()
			diagnostics = append(diagnostics, "ledger list unavailable, every referenced master reported as missing")
		}
	}

	reqs, diags := h.masters.AnalyzeRecords(c.Request.Context(), req.Records, existing)
	c.JSON(http.StatusOK, dto.AnalyzeMastersResponse{
		Requirements: reqs,
		Diagnostics:  append(diagnostics, diags...),
	})
}

// registerMasterRoutes registers the analysis route.
func registerMasterRoutes(group *gin.RouterGroup, masters portssvc.MasterAnalyzerSvc, cache portssvc.LedgerCacheSvc) {
	h := newMasterHandler(masters, cache)
	m := group.Group("/masters")
	m.POST("/analyze", h.analyzeMasters)
}
