package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/finova_ledger/internal/apperrors"
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finova_ledger/internal/models"
	"github.com/SscSPs/finova_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, company_id, account_code, account_name, account_type, parent_account_id,
		is_posting, normal_balance, level, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.ParentAccountID,
		&m.IsPosting,
		&m.NormalBalance,
		&m.Level,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, company_id, account_code, account_name, account_type, parent_account_id,
			is_posting, normal_balance, level, is_active, is_deleted, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.IsPosting,
		m.NormalBalance,
		m.Level,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		// Map unique constraint on (company_id, account_code) to application error
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// UpdateAccount overwrites the mutable fields of an existing, non-deleted account.
// A code already used by another account in the company yields ErrDuplicate.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET account_code = $12, account_name = $3, account_type = $4, parent_account_id = $5, is_posting = $6,
			normal_balance = $7, level = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE company_id = $1 AND account_id = $2 AND is_deleted = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.IsPosting,
		m.NormalBalance,
		m.Level,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Code,
	)
	if err != nil {
		// Renaming onto a taken code hits the same unique index
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	// Check if any row was updated
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountByID retrieves a non-deleted account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	if !isRowID(accountID) {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = $2 AND is_deleted = FALSE;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, accountID))
	if err != nil {
		// Map db not found error to application specific error
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND is_deleted = FALSE AND ($2 OR is_active = TRUE)
		ORDER BY account_code;`

	rows, err := r.Pool.Query(ctx, query, companyID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for company %s: %w", companyID, err)
		}
		accounts = append(accounts, acc)
	}
	// Check for errors during row iteration
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for company %s: %w", companyID, rows.Err())
	}
	return accounts, nil
}

// FindAccountsByIDs retrieves multiple non-deleted accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.findAccountsByIDs(ctx, r.Pool, companyID, accountIDs, "")
}

// FindAccountsByIDsForShare retrieves accounts and holds a shared lock on them so they
// cannot be deactivated until tx ends. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForShare(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.findAccountsByIDs(ctx, tx, companyID, accountIDs, "FOR SHARE")
}

func (r *PgxAccountRepository) findAccountsByIDs(ctx context.Context, q querier, companyID string, accountIDs []string, lockClause string) (map[string]domain.Account, error) {
	// Drop malformed ids, they cannot match a row
	ids := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if isRowID(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}

	// ordered so concurrent lockers acquire rows in the same order
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = ANY($2) AND is_deleted = FALSE
		ORDER BY account_id ` + lockClause + `;`

	rows, err := q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(ids))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	// Missing IDs are absent from the map; the caller decides how to report them.
	return accountsMap, nil
}
