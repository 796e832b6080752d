package services

import (
	"context"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/SscSPs/finova_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetChart lists the company's accounts ordered by code.
	GetChart(ctx context.Context, scope domain.RequestScope, includeInactive bool) ([]domain.Account, error)

	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, scope domain.RequestScope, accountID string) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, scope domain.RequestScope, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount applies the non-nil fields of req to an existing account.
	UpdateAccount(ctx context.Context, scope domain.RequestScope, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
