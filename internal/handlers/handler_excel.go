package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/dto"
	"github.com/autoledger-in/tallybridge/internal/middleware"
	"github.com/autoledger-in/tallybridge/internal/xlsx"
)

// excelHandler parses uploaded workbooks and groups their rows.
type excelHandler struct {
	grouping portssvc.RowGrouperSvc
}

func newExcelHandler(grouping portssvc.RowGrouperSvc) *excelHandler {
	return &excelHandler{grouping: grouping}
}

// parseExcel godoc
// @Summary Parse an uploaded workbook into grouped vouchers
// @Tags excel
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook (.xlsx)"
// @Success 200 {object} dto.ParseExcelResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /excel/parse [post]
func (h *excelHandler) parseExcel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Error("Missing file in parseExcel request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "A workbook file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Could not read uploaded file"})
		return
	}
	defer file.Close()

	result, err := xlsx.Read(file)
	if err != nil {
		logger.Error("Failed to parse workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	vouchers, skipped, diags := h.grouping.GroupRows(c.Request.Context(), result.Rows)
	c.JSON(http.StatusOK, dto.ParseExcelResponse{
		Rows:        result.Rows,
		Vouchers:    vouchers,
		Skipped:     result.Skipped + skipped,
		Diagnostics: append(result.Diagnostics, diags...),
	})
}

// groupRows godoc
// @Summary Group already-parsed rows into vouchers
// @Tags excel
// @Accept json
// @Produce json
// @Param request body dto.GroupRowsRequest true "Parsed rows"
// @Success 200 {object} dto.ParseExcelResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /excel/group [post]
func (h *excelHandler) groupRows(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GroupRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for groupRows", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format"})
		return
	}

	vouchers, skipped, diags := h.grouping.GroupRows(c.Request.Context(), req.Rows)
	c.JSON(http.StatusOK, dto.ParseExcelResponse{
		Rows:        req.Rows,
		Vouchers:    vouchers,
		Skipped:     skipped,
		Diagnostics: diags,
	})
}

// registerExcelRoutes registers the workbook routes.
func registerExcelRoutes(group *gin.RouterGroup, grouping portssvc.RowGrouperSvc) {
	h := newExcelHandler(grouping)
	e := group.Group("/excel")
	e.POST("/parse", h.parseExcel)
	e.POST("/group", h.groupRows)
}
