package repositories

import (
	"context"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// ListAccounts returns the company's non-deleted accounts ordered by code.
	// Inactive accounts are included only when includeInactive is set.
	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)

	// FindAccountByID retrieves a specific account. Returns apperrors.ErrNotFound when absent.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate code yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account. Returns apperrors.ErrNotFound when no row matched.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that run inside a caller-owned transaction
type AccountTransactionSupport interface {
	// FindAccountsByIDsForShare reads accounts with a shared row lock held until tx ends.
	FindAccountsByIDsForShare(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
