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

// voucherHandler exposes the generate and import endpoints for the three
// voucher paths.
type voucherHandler struct {
	importer portssvc.ImporterSvc
}

func newVoucherHandler(importer portssvc.ImporterSvc) *voucherHandler {
	return &voucherHandler{importer: importer}
}

// generateInvoice godoc
// @Summary Generate import XML for one invoice
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body dto.GenerateInvoiceRequest true "Invoice record"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /vouchers/invoice/generate [post]
func (h *voucherHandler) generateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for generateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.importer.BuildRecordsXML(c.Request.Context(), req.Company, []models.TransactionRecord{req.Record}, true)
	if err != nil {
		respondError(c, logger, err, "Failed to generate invoice XML")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// generateBulk godoc
// @Summary Generate import XML for a batch of records
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body dto.GenerateBulkRequest true "Record batch"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /vouchers/excel/generate [post]
func (h *voucherHandler) generateBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for generateBulk", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.importer.BuildRecordsXML(c.Request.Context(), req.Company, req.Records, false)
	if err != nil {
		respondError(c, logger, err, "Failed to generate batch XML")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// generateBank godoc
// @Summary Generate import XML for a bank statement
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body dto.GenerateBankRequest true "Mapped bank statement"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /vouchers/bank/generate [post]
func (h *voucherHandler) generateBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for generateBank", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.importer.BuildBankXML(c.Request.Context(), req.Company, req.Statement)
	if err != nil {
		respondError(c, logger, err, "Failed to generate bank XML")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// importInvoice godoc
// @Summary Import one invoice into Tally
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body dto.GenerateInvoiceRequest true "Invoice record"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /vouchers/invoice/import [post]
func (h *voucherHandler) importInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for importInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.importer.ImportRecords(c.Request.Context(), req.Company, models.InvoiceImport, []models.TransactionRecord{req.Record}, true)
	if err != nil {
		if resp != nil {
			// Tally rejected part of the batch; the caller still wants
			// the counters.
			c.JSON(http.StatusUnprocessableEntity, resp)
			return
		}
		respondError(c, logger, err, "Failed to import invoice")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// importBulk godoc
// @Summary Import a batch of records into Tally
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body dto.GenerateBulkRequest true "Record batch"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /vouchers/excel/import [post]
func (h *voucherHandler) importBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for importBulk", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.importer.ImportRecords(c.Request.Context(), req.Company, models.ExcelImport, req.Records, false)
	if err != nil {
		if resp != nil {
			c.JSON(http.StatusUnprocessableEntity, resp)
			return
		}
		respondError(c, logger, err, "Failed to import batch")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// importBank godoc
// @Summary Import a bank statement into Tally
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body dto.GenerateBankRequest true "Mapped bank statement"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /vouchers/bank/import [post]
func (h *voucherHandler) importBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for importBank", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format"})
		return
	}

	resp, err := h.importer.ImportBank(c.Request.Context(), req.Company, req.Statement)
	if err != nil {
		if resp != nil {
			c.JSON(http.StatusUnprocessableEntity, resp)
			return
		}
		respondError(c, logger, err, "Failed to import bank statement")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// registerVoucherRoutes registers generation and import routes.
func registerVoucherRoutes(group *gin.RouterGroup, importer portssvc.ImporterSvc) {
	h := newVoucherHandler(importer)
	v := group.Group("/vouchers")

	v.POST("/invoice/generate", h.generateInvoice)
	v.POST("/excel/generate", h.generateBulk)
	v.POST("/bank/generate", h.generateBank)

	v.POST("/invoice/import", h.importInvoice)
	v.POST("/excel/import", h.importBulk)
	v.POST("/bank/import", h.importBank)
}
