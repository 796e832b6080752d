package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// FiscalReader resolves dates against the fiscal calendar.
type FiscalReader interface {
	// ResolvePeriod returns the period covering date, preferring the latest start.
	// An empty resolution is returned when nothing covers the date.
	ResolvePeriod(ctx context.Context, companyID string, date time.Time) (domain.PeriodResolution, error)
}

// FiscalTransactionSupport defines resolution inside a caller-owned transaction
type FiscalTransactionSupport interface {
	// ResolvePeriodInTx is ResolvePeriod holding a shared lock on the matched period.
	ResolvePeriodInTx(ctx context.Context, tx pgx.Tx, companyID string, date time.Time) (domain.PeriodResolution, error)
}

// FiscalRepositoryFacade combines all fiscal calendar repository interfaces
type FiscalRepositoryFacade interface {
	FiscalReader
	FiscalTransactionSupport
}
