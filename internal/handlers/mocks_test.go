package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/finova_ledger/internal/core/ports/services"
	"github.com/SscSPs/finova_ledger/internal/dto"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetChart(ctx context.Context, scope domain.RequestScope, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, scope, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, scope domain.RequestScope, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, scope, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, scope domain.RequestScope, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, scope, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, scope domain.RequestScope, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, scope, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock FiscalService ---
type MockFiscalService struct {
	mock.Mock
}

var _ portssvc.FiscalSvcFacade = (*MockFiscalService)(nil)

func (m *MockFiscalService) ResolvePeriod(ctx context.Context, scope domain.RequestScope, date time.Time) (domain.PeriodResolution, error) {
	args := m.Called(ctx, scope, date)
	return args.Get(0).(domain.PeriodResolution), args.Error(1)
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetJournals(ctx context.Context, scope domain.RequestScope) ([]domain.Journal, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalService) ListHeaders(ctx context.Context, scope domain.RequestScope, filter domain.HeaderFilter) ([]domain.JournalHeader, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalHeader), args.Error(1)
}

func (m *MockJournalService) GetHeader(ctx context.Context, scope domain.RequestScope, headerID string) (*domain.JournalHeader, error) {
	args := m.Called(ctx, scope, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalHeader), args.Error(1)
}

func (m *MockJournalService) GetLines(ctx context.Context, scope domain.RequestScope, headerID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, scope, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalService) SaveDraft(ctx context.Context, scope domain.RequestScope, draft domain.JournalDraft) (string, error) {
	args := m.Called(ctx, scope, draft)
	return args.String(0), args.Error(1)
}

func (m *MockJournalService) Post(ctx context.Context, scope domain.RequestScope, headerID string) (*domain.PostResult, error) {
	args := m.Called(ctx, scope, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostResult), args.Error(1)
}
