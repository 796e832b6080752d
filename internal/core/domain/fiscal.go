package domain

import "time"

// FiscalPeriod is a closable date range inside a fiscal year.
type FiscalPeriod struct {
	FiscalPeriodID string    `json:"fiscalPeriodID"`
	FiscalYearID   string    `json:"fiscalYearID"`
	CompanyID      string    `json:"companyID"`
	PeriodNo       int       `json:"periodNo"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsClosed       bool      `json:"isClosed"`
}

// PeriodResolution is the outcome of mapping a date onto the fiscal calendar.
// Both IDs are nil when no period covers the date.
type PeriodResolution struct {
	FiscalPeriodID *string `json:"fiscalPeriodID,omitempty"`
	FiscalYearID   *string `json:"fiscalYearID,omitempty"`
	IsClosed       bool    `json:"isClosed"`
}

// Found reports whether a period covers the resolved date.
func (r PeriodResolution) Found() bool {
	return r.FiscalPeriodID != nil
}
