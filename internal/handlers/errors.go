package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/finova_ledger/internal/apperrors"
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/SscSPs/finova_ledger/internal/middleware"
)

// handleServiceError maps a service error onto an HTTP status and writes {"error": ...}.
// Business rejections carry their message to the caller; unexpected failures do not.
func handleServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		msg := "Forbidden"
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
		c.JSON(http.StatusForbidden, gin.H{"error": msg})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		msg := "Not found"
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// requireScope reads the caller's scope set by AuthMiddleware, answering 401 when absent.
func requireScope(c *gin.Context, logger *slog.Logger) (domain.RequestScope, bool) {
	scope, ok := middleware.GetScopeFromContext(c)
	if !ok {
		logger.Error("Request scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.RequestScope{}, false
	}
	return scope, true
}
