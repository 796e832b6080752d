package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finova_ledger/internal/models"
	"github.com/SscSPs/finova_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalRepository struct {
	BaseRepository
}

func newPgxFiscalRepository(pool *pgxpool.Pool) *PgxFiscalRepository {
	return &PgxFiscalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalRepositoryFacade = (*PgxFiscalRepository)(nil)

const resolvePeriodQuery = `
		SELECT fp.fiscal_period_id, fp.fiscal_year_id, fp.is_closed, fy.is_closed
		FROM fiscal_periods fp
		JOIN fiscal_years fy ON fy.fiscal_year_id = fp.fiscal_year_id
		WHERE fp.company_id = $1 AND fp.is_deleted = FALSE
		  AND $2::date >= fp.start_date AND $2::date <= fp.end_date
		ORDER BY fp.start_date DESC
		LIMIT 1`

// ResolvePeriod returns the period covering date. Overlapping periods resolve to the latest start.
func (r *PgxFiscalRepository) ResolvePeriod(ctx context.Context, companyID string, date time.Time) (domain.PeriodResolution, error) {
	return r.resolve(ctx, r.Pool, companyID, date, resolvePeriodQuery)
}

// ResolvePeriodInTx resolves like ResolvePeriod and share-locks the period and its year, so
// neither can be closed until tx ends.
func (r *PgxFiscalRepository) ResolvePeriodInTx(ctx context.Context, tx pgx.Tx, companyID string, date time.Time) (domain.PeriodResolution, error) {
	return r.resolve(ctx, tx, companyID, date, resolvePeriodQuery+` FOR SHARE OF fp, fy`)
}

func (r *PgxFiscalRepository) resolve(ctx context.Context, q querier, companyID string, date time.Time, query string) (domain.PeriodResolution, error) {
	var m models.PeriodResolution
	err := q.QueryRow(ctx, query, companyID, date).Scan(
		&m.FiscalPeriodID,
		&m.FiscalYearID,
		&m.PeriodClosed,
		&m.YearClosed,
	)
	if err != nil {
		// No covering period is a valid outcome, not an error
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PeriodResolution{}, nil
		}
		return domain.PeriodResolution{}, fmt.Errorf("failed to resolve fiscal period for %s: %w", date.Format("2006-01-02"), err)
	}
	return mapping.ToDomainPeriodResolution(m), nil
}
