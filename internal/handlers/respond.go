package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autoledger-in/tallybridge/internal/apperrors"
	"github.com/autoledger-in/tallybridge/internal/dto"
)

// respondError maps service errors onto HTTP statuses. AppError carries its
// own code; sentinel errors map to their conventional status; everything
// else is a 500 with a generic body.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("code", appErr.Code))
		c.JSON(appErr.Code, dto.ErrorResponse{Error: appErr.Message})
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrTallyUnreachable):
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}
