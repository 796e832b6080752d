package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a database transaction; the mocked repositories never use it.
type fakeTx struct {
	pgx.Tx
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForShare(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock FiscalRepository ---
type MockFiscalRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalRepositoryFacade = (*MockFiscalRepository)(nil)

func (m *MockFiscalRepository) ResolvePeriod(ctx context.Context, companyID string, date time.Time) (domain.PeriodResolution, error) {
	args := m.Called(ctx, companyID, date)
	return args.Get(0).(domain.PeriodResolution), args.Error(1)
}

func (m *MockFiscalRepository) ResolvePeriodInTx(ctx context.Context, tx pgx.Tx, companyID string, date time.Time) (domain.PeriodResolution, error) {
	args := m.Called(ctx, tx, companyID, date)
	return args.Get(0).(domain.PeriodResolution), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, companyID string) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListHeaders(ctx context.Context, companyID string, filter domain.HeaderFilter) ([]domain.JournalHeader, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalHeader), args.Error(1)
}

func (m *MockJournalRepository) FindHeaderByID(ctx context.Context, companyID, headerID string) (*domain.JournalHeader, error) {
	args := m.Called(ctx, companyID, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalHeader), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByHeaderID(ctx context.Context, companyID, headerID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, companyID, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) InsertHeader(ctx context.Context, companyID, userID string, header domain.JournalHeader) (string, error) {
	args := m.Called(ctx, companyID, userID, header)
	return args.String(0), args.Error(1)
}

func (m *MockJournalRepository) InsertLines(ctx context.Context, companyID, userID, headerID string, lines []domain.JournalDraftLine) error {
	args := m.Called(ctx, companyID, userID, headerID, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkPosted(ctx context.Context, companyID, userID, headerID string) (domain.PostOutcome, error) {
	args := m.Called(ctx, companyID, userID, headerID)
	return args.Get(0).(domain.PostOutcome), args.Error(1)
}

func (m *MockJournalRepository) NextSequenceNo(ctx context.Context, tx pgx.Tx, companyID, journalID string) (int64, error) {
	args := m.Called(ctx, tx, companyID, journalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) InsertHeaderInTx(ctx context.Context, tx pgx.Tx, companyID, userID string, header domain.JournalHeader) error {
	args := m.Called(ctx, tx, companyID, userID, header)
	return args.Error(0)
}

func (m *MockJournalRepository) InsertLinesInTx(ctx context.Context, tx pgx.Tx, companyID, userID, headerID string, lines []domain.JournalDraftLine) error {
	args := m.Called(ctx, tx, companyID, userID, headerID, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindHeaderForUpdate(ctx context.Context, tx pgx.Tx, companyID, headerID string) (*domain.JournalHeader, error) {
	args := m.Called(ctx, tx, companyID, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalHeader), args.Error(1)
}

func (m *MockJournalRepository) FindLinesInTx(ctx context.Context, tx pgx.Tx, companyID, headerID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, tx, companyID, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) MarkPostedInTx(ctx context.Context, tx pgx.Tx, companyID, userID, headerID string, postedAt time.Time) (domain.PostOutcome, error) {
	args := m.Called(ctx, tx, companyID, userID, headerID, postedAt)
	return args.Get(0).(domain.PostOutcome), args.Error(1)
}
