package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finova_ledger/internal/core/ports/services"
)

type fiscalService struct {
	BaseService
	fiscalRepo portsrepo.FiscalRepositoryFacade
}

// NewFiscalService creates the fiscal calendar resolver.
func NewFiscalService(repo portsrepo.FiscalRepositoryFacade, options ...ServiceOption) portssvc.FiscalSvcFacade {
	svc := &fiscalService{fiscalRepo: repo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.FiscalSvcFacade = (*fiscalService)(nil)

// ResolvePeriod maps date onto the company's fiscal calendar. An empty resolution means
// no period covers the date.
func (s *fiscalService) ResolvePeriod(ctx context.Context, scope domain.RequestScope, date time.Time) (domain.PeriodResolution, error) {
	if err := s.Authorize(ctx, scope, domain.PermFiscalView); err != nil {
		return domain.PeriodResolution{}, err
	}
	res, err := s.fiscalRepo.ResolvePeriod(ctx, scope.CompanyID, dateOnly(date))
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve fiscal period", slog.String("date", date.Format("2006-01-02")))
		return domain.PeriodResolution{}, fmt.Errorf("failed to resolve fiscal period: %w", err)
	}
	return res, nil
}
