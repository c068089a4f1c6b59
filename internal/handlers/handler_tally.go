package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/dto"
	"github.com/autoledger-in/tallybridge/internal/middleware"
)

// tallyHandler exposes gateway connectivity and company/ledger discovery.
type tallyHandler struct {
	tally portssvc.TallyClientSvc
	cache portssvc.LedgerCacheSvc
}

func newTallyHandler(tally portssvc.TallyClientSvc, cache portssvc.LedgerCacheSvc) *tallyHandler {
	return &tallyHandler{tally: tally, cache: cache}
}

// getStatus godoc
// @Summary Report Tally gateway connectivity
// @Tags tally
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /tally/status [get]
func (h *tallyHandler) getStatus(c *gin.Context) {
	resp := dto.StatusResponse{TallyURL: h.tally.BaseURL()}
	if err := h.tally.CheckHealth(c.Request.Context()); err != nil {
		resp.Detail = err.Error()
	} else {
		resp.Connected = true
	}
	c.JSON(http.StatusOK, resp)
}

// listCompanies godoc
// @Summary List companies currently open in Tally
// @Tags tally
// @Produce json
// @Success 200 {object} dto.CompaniesResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /tally/companies [get]
func (h *tallyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companies, err := h.tally.FetchCompanies(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch companies from Tally")
		return
	}
	c.JSON(http.StatusOK, dto.CompaniesResponse{Companies: companies})
}

// listLedgers godoc
// @Summary List ledger names known in a company
// @Tags tally
// @Produce json
// @Param company query string false "Company name; empty targets the active company"
// @Param refresh query bool false "Bypass the cache and refetch from Tally"
// @Success 200 {object} dto.LedgersResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /tally/ledgers [get]
func (h *tallyHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	company := c.Query("company")

	var err error
	var set map[string]struct{}
	if c.Query("refresh") == "true" {
		set, err = h.cache.Refresh(c.Request.Context(), company)
	} else {
		set, err = h.cache.Known(c.Request.Context(), company)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to fetch ledgers from Tally")
		return
	}

	ledgers := make([]string, 0, len(set))
	for name := range set {
		ledgers = append(ledgers, name)
	}
	sort.Strings(ledgers)
	c.JSON(http.StatusOK, dto.LedgersResponse{Company: company, Ledgers: ledgers, Count: len(ledgers)})
}

// registerTallyRoutes registers the gateway discovery routes.
func registerTallyRoutes(group *gin.RouterGroup, tally portssvc.TallyClientSvc, cache portssvc.LedgerCacheSvc) {
	h := newTallyHandler(tally, cache)
	t := group.Group("/tally")
	t.GET("/status", h.getStatus)
	t.GET("/companies", h.listCompanies)
	t.GET("/ledgers", h.listLedgers)
}
