package dto

import "github.com/SscSPs/finova_ledger/internal/core/domain"

// ResolvePeriodParams defines query parameters for fiscal period resolution.
type ResolvePeriodParams struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// PeriodResolutionResponse reports the period covering a date. IDs are omitted when none does.
type PeriodResolutionResponse struct {
	Date           string  `json:"date"`
	Found          bool    `json:"found"`
	FiscalPeriodID *string `json:"fiscalPeriodID,omitempty"`
	FiscalYearID   *string `json:"fiscalYearID,omitempty"`
	IsClosed       bool    `json:"isClosed"`
}

// ToPeriodResolutionResponse converts a resolution for the requested date.
func ToPeriodResolutionResponse(date string, res domain.PeriodResolution) PeriodResolutionResponse {
	return PeriodResolutionResponse{
		Date:           date,
		Found:          res.Found(),
		FiscalPeriodID: res.FiscalPeriodID,
		FiscalYearID:   res.FiscalYearID,
		IsClosed:       res.IsClosed,
	}
}
