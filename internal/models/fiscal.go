package models

// PeriodResolution is the projection returned by the fiscal period lookup.
type PeriodResolution struct {
	FiscalPeriodID string `db:"fiscal_period_id"`
	FiscalYearID   string `db:"fiscal_year_id"`
	PeriodClosed   bool   `db:"period_closed"`
	YearClosed     bool   `db:"year_closed"`
}
