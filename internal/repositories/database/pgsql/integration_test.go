//go:build integration

package pgsql_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SscSPs/finova_ledger/internal/apperrors"
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finova_ledger/internal/core/services"
	"github.com/SscSPs/finova_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/finova_ledger/pkg/database"
)

type PgsqlIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
	logger    *slog.Logger

	companyID string
	userID    string
	journalID string
	fyID      string
	periodID  string
	cashID    string
	salesID   string
}

func (s *PgsqlIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(database.RunMigrations(dsn, database.MigrateUp, 0, s.logger))

	s.pool, err = database.NewPgxPool(s.ctx, dsn, 5, s.logger)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *PgsqlIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		database.ClosePgxPool(s.pool, s.logger)
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

// SetupTest gives every test its own company with a journal, an open 2025 calendar and two accounts.
func (s *PgsqlIntegrationSuite) SetupTest() {
	s.companyID = uuid.NewString()
	s.userID = "user-" + uuid.NewString()[:8]
	s.journalID = s.seedJournal("GJ", true)
	s.fyID = s.seedFiscalYear("FY2025", "2025-01-01", "2025-12-31", false)
	s.periodID = s.seedPeriod(s.fyID, 1, "2025-01-01", "2025-12-31", false)
	s.cashID = s.seedAccount("1000", "Cash", domain.Asset, domain.NormalDebit)
	s.salesID = s.seedAccount("4000", "Sales", domain.Income, domain.NormalCredit)
}

func (s *PgsqlIntegrationSuite) scope() domain.RequestScope {
	return domain.RequestScope{CompanyID: s.companyID, UserID: s.userID, Permissions: []string{domain.PermAll}}
}

func (s *PgsqlIntegrationSuite) seedJournal(code string, active bool) string {
	id := uuid.NewString()
	_, err := s.pool.Exec(s.ctx,
		`INSERT INTO journals (journal_id, company_id, journal_code, journal_name, is_active) VALUES ($1, $2, $3, $4, $5)`,
		id, s.companyID, code, code+" journal", active)
	s.Require().NoError(err)
	return id
}

func (s *PgsqlIntegrationSuite) seedFiscalYear(code, start, end string, closed bool) string {
	id := uuid.NewString()
	_, err := s.pool.Exec(s.ctx,
		`INSERT INTO fiscal_years (fiscal_year_id, company_id, year_code, start_date, end_date, is_closed) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, s.companyID, code, start, end, closed)
	s.Require().NoError(err)
	return id
}

func (s *PgsqlIntegrationSuite) seedPeriod(fyID string, no int, start, end string, closed bool) string {
	id := uuid.NewString()
	_, err := s.pool.Exec(s.ctx,
		`INSERT INTO fiscal_periods (fiscal_period_id, fiscal_year_id, company_id, period_no, start_date, end_date, is_closed) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, fyID, s.companyID, no, start, end, closed)
	s.Require().NoError(err)
	return id
}

func (s *PgsqlIntegrationSuite) seedAccount(code, name string, t domain.AccountType, nb domain.NormalBalance) string {
	now := time.Now().UTC()
	acc := domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     s.companyID,
		Code:          code,
		Name:          name,
		AccountType:   t,
		IsPosting:     true,
		NormalBalance: nb,
		Level:         1,
		IsActive:      true,
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: s.userID, LastUpdatedAt: now, LastUpdatedBy: s.userID},
	}
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, acc))
	return acc.AccountID
}

func (s *PgsqlIntegrationSuite) insertHeader(jeNo string, date time.Time, amount int64) string {
	id, err := s.repos.JournalRepo.InsertHeader(s.ctx, s.companyID, s.userID, domain.JournalHeader{
		JournalID:   s.journalID,
		SequenceNo:  jeNo,
		Date:        date,
		TotalDebit:  decimal.NewFromInt(amount),
		TotalCredit: decimal.NewFromInt(amount),
	})
	s.Require().NoError(err)
	return id
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *PgsqlIntegrationSuite) TestSaveAccount_DuplicateCode() {
	now := time.Now().UTC()
	err := s.repos.AccountRepo.SaveAccount(s.ctx, domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     s.companyID,
		Code:          "1000",
		Name:          "Petty cash",
		AccountType:   domain.Asset,
		IsPosting:     true,
		NormalBalance: domain.NormalDebit,
		Level:         1,
		IsActive:      true,
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: s.userID, LastUpdatedAt: now, LastUpdatedBy: s.userID},
	})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *PgsqlIntegrationSuite) TestUpdateAccount_Code() {
	cash, err := s.repos.AccountRepo.FindAccountByID(s.ctx, s.companyID, s.cashID)
	s.Require().NoError(err)

	s.Run("rename", func() {
		renamed := *cash
		renamed.Code = "1010"
		s.Require().NoError(s.repos.AccountRepo.UpdateAccount(s.ctx, renamed))

		got, err := s.repos.AccountRepo.FindAccountByID(s.ctx, s.companyID, s.cashID)
		s.Require().NoError(err)
		s.Equal("1010", got.Code)
	})

	s.Run("code taken by another account", func() {
		clash := *cash
		clash.Code = "4000"
		err := s.repos.AccountRepo.UpdateAccount(s.ctx, clash)
		s.ErrorIs(err, apperrors.ErrDuplicate)
	})
}

func (s *PgsqlIntegrationSuite) TestMalformedIDsAreNotFound() {
	_, err := s.repos.AccountRepo.FindAccountByID(s.ctx, s.companyID, "1000")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.repos.JournalRepo.FindHeaderByID(s.ctx, s.companyID, "not-a-uuid")
	s.ErrorIs(err, apperrors.ErrNotFound)

	outcome, err := s.repos.JournalRepo.MarkPosted(s.ctx, s.companyID, s.userID, "not-a-uuid")
	s.Require().NoError(err)
	s.Equal(domain.PostOutcomeNotFound, outcome)

	accounts, err := s.repos.AccountRepo.FindAccountsByIDs(s.ctx, s.companyID, []string{"cash", s.cashID})
	s.Require().NoError(err)
	s.Len(accounts, 1)

	res, err := services.NewServiceContainer(s.repos).Journal.Post(s.ctx, s.scope(), "not-a-uuid")
	s.Require().NoError(err)
	s.Equal(domain.PostOutcomeNotFound, res.Outcome)
}

func (s *PgsqlIntegrationSuite) TestFindAccountsByIDs_OmitsUnknown() {
	accounts, err := s.repos.AccountRepo.FindAccountsByIDs(s.ctx, s.companyID, []string{s.cashID, uuid.NewString()})
	s.Require().NoError(err)
	s.Len(accounts, 1)
	s.Equal("Cash", accounts[s.cashID].Name)
}

func (s *PgsqlIntegrationSuite) TestResolvePeriod() {
	s.Run("no period", func() {
		res, err := s.repos.FiscalRepo.ResolvePeriod(s.ctx, s.companyID, day(2030, 1, 1))
		s.Require().NoError(err)
		s.False(res.Found())
	})

	s.Run("latest start wins on overlap", func() {
		march := s.seedPeriod(s.fyID, 3, "2025-03-01", "2025-03-31", false)
		res, err := s.repos.FiscalRepo.ResolvePeriod(s.ctx, s.companyID, day(2025, 3, 15))
		s.Require().NoError(err)
		s.Require().True(res.Found())
		s.Equal(march, *res.FiscalPeriodID)
		s.Equal(s.fyID, *res.FiscalYearID)
		s.False(res.IsClosed)
	})

	s.Run("closed year closes its periods", func() {
		fy := s.seedFiscalYear("FY2024", "2024-01-01", "2024-12-31", true)
		s.seedPeriod(fy, 1, "2024-01-01", "2024-12-31", false)
		res, err := s.repos.FiscalRepo.ResolvePeriod(s.ctx, s.companyID, day(2024, 6, 1))
		s.Require().NoError(err)
		s.True(res.IsClosed)
	})
}

func (s *PgsqlIntegrationSuite) TestInsertLines_AllOrNothing() {
	headerID := s.insertHeader("GJ-900001", day(2025, 2, 1), 100)

	err := s.repos.JournalRepo.InsertLines(s.ctx, s.companyID, s.userID, headerID, []domain.JournalDraftLine{
		{AccountID: s.cashID, Debit: decimal.NewFromInt(100)},
		{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(100)},
	})
	s.Require().Error(err)

	lines, err := s.repos.JournalRepo.FindLinesByHeaderID(s.ctx, s.companyID, headerID)
	s.Require().NoError(err)
	s.Empty(lines)
}

func (s *PgsqlIntegrationSuite) TestMarkPosted_Outcomes() {
	headerID := s.insertHeader("GJ-900002", day(2025, 2, 1), 50)

	outcome, err := s.repos.JournalRepo.MarkPosted(s.ctx, s.companyID, s.userID, headerID)
	s.Require().NoError(err)
	s.Equal(domain.PostOutcomePosted, outcome)

	outcome, err = s.repos.JournalRepo.MarkPosted(s.ctx, s.companyID, s.userID, headerID)
	s.Require().NoError(err)
	s.Equal(domain.PostOutcomeAlreadyPosted, outcome)

	outcome, err = s.repos.JournalRepo.MarkPosted(s.ctx, s.companyID, s.userID, uuid.NewString())
	s.Require().NoError(err)
	s.Equal(domain.PostOutcomeNotFound, outcome)

	header, err := s.repos.JournalRepo.FindHeaderByID(s.ctx, s.companyID, headerID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, header.Status)
	s.Require().NotNil(header.PostedBy)
	s.Equal(s.userID, *header.PostedBy)
	s.NotNil(header.PostedAt)
}

func (s *PgsqlIntegrationSuite) TestListHeaders_OrderingAndFilters() {
	s.insertHeader("GJ-000009", day(2025, 1, 10), 10)
	s.insertHeader("GJ-000010", day(2025, 1, 10), 10)
	posted := s.insertHeader("GJ-000011", day(2025, 2, 1), 10)
	_, err := s.repos.JournalRepo.MarkPosted(s.ctx, s.companyID, s.userID, posted)
	s.Require().NoError(err)

	all, err := s.repos.JournalRepo.ListHeaders(s.ctx, s.companyID, domain.HeaderFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("GJ-000011", all[0].SequenceNo)
	s.Equal("GJ-000010", all[1].SequenceNo)
	s.Equal("GJ-000009", all[2].SequenceNo)

	draft := domain.StatusDraft
	drafts, err := s.repos.JournalRepo.ListHeaders(s.ctx, s.companyID, domain.HeaderFilter{Status: &draft})
	s.Require().NoError(err)
	s.Len(drafts, 2)

	from := day(2025, 1, 15)
	recent, err := s.repos.JournalRepo.ListHeaders(s.ctx, s.companyID, domain.HeaderFilter{From: &from})
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal(posted, recent[0].HeaderID)
}

func (s *PgsqlIntegrationSuite) TestSaveDraftAndPost_EndToEnd() {
	container := services.NewServiceContainer(s.repos)
	draft := domain.JournalDraft{
		JournalID:   s.journalID,
		Date:        day(2025, 3, 15),
		Description: "cash sale",
		Lines: []domain.JournalDraftLine{
			{AccountID: s.cashID, Debit: decimal.RequireFromString("100.5")},
			{AccountID: s.salesID, Credit: decimal.RequireFromString("100.5")},
		},
	}

	firstID, err := container.Journal.SaveDraft(s.ctx, s.scope(), draft)
	s.Require().NoError(err)
	secondID, err := container.Journal.SaveDraft(s.ctx, s.scope(), draft)
	s.Require().NoError(err)

	first, err := container.Journal.GetHeader(s.ctx, s.scope(), firstID)
	s.Require().NoError(err)
	second, err := container.Journal.GetHeader(s.ctx, s.scope(), secondID)
	s.Require().NoError(err)
	s.Equal("GJ-000001", first.SequenceNo)
	s.Equal("GJ-000002", second.SequenceNo)
	s.Equal(domain.StatusDraft, first.Status)
	s.True(first.TotalDebit.Equal(decimal.RequireFromString("100.5")))
	s.Require().NotNil(first.FiscalPeriodID)
	s.Equal(s.periodID, *first.FiscalPeriodID)

	lines, err := container.Journal.GetLines(s.ctx, s.scope(), firstID)
	s.Require().NoError(err)
	s.Require().Len(lines, 2)
	s.Equal(1, lines[0].LineNo)
	s.Equal(2, lines[1].LineNo)

	res, err := container.Journal.Post(s.ctx, s.scope(), firstID)
	s.Require().NoError(err)
	s.Equal(domain.PostOutcomePosted, res.Outcome)

	res, err = container.Journal.Post(s.ctx, s.scope(), firstID)
	s.Require().NoError(err)
	s.Equal(domain.PostOutcomeAlreadyPosted, res.Outcome)
}

func (s *PgsqlIntegrationSuite) TestSaveDraft_RejectionLeavesNoTrace() {
	container := services.NewServiceContainer(s.repos)
	_, err := container.Journal.SaveDraft(s.ctx, s.scope(), domain.JournalDraft{
		JournalID: s.journalID,
		Date:      day(2025, 3, 15),
		Lines: []domain.JournalDraftLine{
			{AccountID: s.cashID, Debit: decimal.NewFromInt(100)},
			{AccountID: s.salesID, Credit: decimal.NewFromInt(90)},
		},
	})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "unbalanced entry")

	headers, err := s.repos.JournalRepo.ListHeaders(s.ctx, s.companyID, domain.HeaderFilter{})
	s.Require().NoError(err)
	s.Empty(headers)

	// the failed save must not consume a sequence number
	id, err := container.Journal.SaveDraft(s.ctx, s.scope(), domain.JournalDraft{
		JournalID: s.journalID,
		Date:      day(2025, 3, 15),
		Lines: []domain.JournalDraftLine{
			{AccountID: s.cashID, Debit: decimal.NewFromInt(90)},
			{AccountID: s.salesID, Credit: decimal.NewFromInt(90)},
		},
	})
	s.Require().NoError(err)
	header, err := container.Journal.GetHeader(s.ctx, s.scope(), id)
	s.Require().NoError(err)
	s.Equal("GJ-000001", header.SequenceNo)
}

func (s *PgsqlIntegrationSuite) TestPost_ClosedPeriodRejected() {
	container := services.NewServiceContainer(s.repos)
	id, err := container.Journal.SaveDraft(s.ctx, s.scope(), domain.JournalDraft{
		JournalID: s.journalID,
		Date:      day(2025, 5, 5),
		Lines: []domain.JournalDraftLine{
			{AccountID: s.cashID, Debit: decimal.NewFromInt(5)},
			{AccountID: s.salesID, Credit: decimal.NewFromInt(5)},
		},
	})
	s.Require().NoError(err)

	_, err = s.pool.Exec(s.ctx, `UPDATE fiscal_periods SET is_closed = TRUE WHERE fiscal_period_id = $1`, s.periodID)
	s.Require().NoError(err)

	_, err = container.Journal.Post(s.ctx, s.scope(), id)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	header, err := container.Journal.GetHeader(s.ctx, s.scope(), id)
	s.Require().NoError(err)
	s.Equal(domain.StatusDraft, header.Status)
}

func TestPgsqlIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed tests in short mode")
	}
	suite.Run(t, new(PgsqlIntegrationSuite))
}
