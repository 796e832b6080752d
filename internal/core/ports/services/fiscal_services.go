package services

import (
	"context"
	"time"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
)

// FiscalSvcFacade maps dates onto the fiscal calendar
type FiscalSvcFacade interface {
	ResolvePeriod(ctx context.Context, scope domain.RequestScope, date time.Time) (domain.PeriodResolution, error)
}
