package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/finova_ledger/internal/core/ports/services"
	"github.com/SscSPs/finova_ledger/internal/dto"
	"github.com/SscSPs/finova_ledger/internal/middleware"
)

type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := &fiscalHandler{fiscalService: fiscalService}
	rg.GET("/fiscal-periods/resolve", h.resolvePeriod)
}

// resolvePeriod godoc
// @Summary Resolve the fiscal period for a date
// @Description Returns the period covering the date and whether it (or its year) is closed. found=false when no period covers it.
// @Tags fiscal
// @Produce  json
// @Param   date query string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} dto.PeriodResolutionResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to resolve fiscal period"
// @Security BearerAuth
// @Router /fiscal-periods/resolve [get]
func (h *fiscalHandler) resolvePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := requireScope(c, logger)
	if !ok {
		return
	}

	var params dto.ResolvePeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ResolvePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	date, err := time.Parse(dto.DateLayout, params.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + params.Date})
		return
	}

	res, err := h.fiscalService.ResolvePeriod(c.Request.Context(), scope, date)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to resolve fiscal period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResolutionResponse(params.Date, res))
}
