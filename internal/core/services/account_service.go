package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finova_ledger/internal/apperrors"
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finova_ledger/internal/core/ports/services"
	"github.com/SscSPs/finova_ledger/internal/dto"
	"github.com/google/uuid"
)

var (
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidNormalBalance = errors.New("normal balance must be DR or CR")
	ErrParentNotFound       = errors.New("parent account not found")
	ErrAccountFieldRequired = errors.New("account code and name are required")
	ErrParentCycle          = errors.New("account hierarchy cycle")
)

// maxHierarchyDepth bounds the ancestor walk in case stored data already holds a cycle.
const maxHierarchyDepth = 64

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// ServiceOption is a functional option shared by the services in this package.
type ServiceOption func(*BaseService)

// WithClock overrides the time source used for audit fields and posting stamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetChart(ctx context.Context, scope domain.RequestScope, includeInactive bool) ([]domain.Account, error) {
	if err := s.Authorize(ctx, scope, domain.PermAccountsView); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, scope.CompanyID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", scope.CompanyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, scope domain.RequestScope, accountID string) (*domain.Account, error) {
	if err := s.Authorize(ctx, scope, domain.PermAccountsView); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, scope.CompanyID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) CreateAccount(ctx context.Context, scope domain.RequestScope, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.Authorize(ctx, scope, domain.PermAccountsEdit); err != nil {
		return nil, err
	}

	code, name := strings.TrimSpace(req.Code), strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, apperrors.NewValidationError(ErrAccountFieldRequired, "account code and name are required")
	}
	if err := validateClassification(req.AccountType, req.NormalBalance); err != nil {
		return nil, err
	}

	level := req.Level
	if req.ParentAccountID != nil {
		parent, err := s.findParent(ctx, scope.CompanyID, *req.ParentAccountID)
		if err != nil {
			return nil, err
		}
		if level == 0 {
			level = parent.Level + 1
		}
	}
	if level == 0 {
		level = 1
	}

	isPosting := true
	if req.IsPosting != nil {
		isPosting = *req.IsPosting
	}

	now := s.now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       scope.CompanyID,
		Code:            code,
		Name:            name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		IsPosting:       isPosting,
		NormalBalance:   req.NormalBalance,
		Level:           level,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     scope.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: scope.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Duplicate account code", slog.String("code", code))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, scope domain.RequestScope, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := s.Authorize(ctx, scope, domain.PermAccountsEdit); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, scope.CompanyID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		return nil, fmt.Errorf("failed to get account %s for update: %w", accountID, err)
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, apperrors.NewValidationError(ErrAccountFieldRequired, "account code cannot be empty")
		}
		account.Code = code
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError(ErrAccountFieldRequired, "account name cannot be empty")
		}
		account.Name = name
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	if req.NormalBalance != nil {
		account.NormalBalance = *req.NormalBalance
	}
	if err := validateClassification(account.AccountType, account.NormalBalance); err != nil {
		return nil, err
	}
	if req.ParentAccountID != nil {
		if *req.ParentAccountID == accountID {
			return nil, apperrors.NewValidationError(nil, "an account cannot be its own parent")
		}
		parent, err := s.findParent(ctx, scope.CompanyID, *req.ParentAccountID)
		if err != nil {
			return nil, err
		}
		if err := s.checkNotDescendant(ctx, scope.CompanyID, accountID, parent); err != nil {
			return nil, err
		}
		account.ParentAccountID = req.ParentAccountID
	}
	if req.IsPosting != nil {
		account.IsPosting = *req.IsPosting
	}
	if req.Level != nil {
		account.Level = *req.Level
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = s.now()
	account.LastUpdatedBy = scope.UserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Duplicate account code", slog.String("code", account.Code))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) findParent(ctx context.Context, companyID, parentID string) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, companyID, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(ErrParentNotFound, "parent account not found")
		}
		return nil, fmt.Errorf("failed to get parent account %s: %w", parentID, err)
	}
	return parent, nil
}

// checkNotDescendant walks up from parent and rejects the move when accountID is one of
// its ancestors, since the account would then sit below itself.
func (s *accountService) checkNotDescendant(ctx context.Context, companyID, accountID string, parent *domain.Account) error {
	cur := parent
	for depth := 0; cur.ParentAccountID != nil; depth++ {
		if *cur.ParentAccountID == accountID {
			return apperrors.NewValidationError(ErrParentCycle,
				"account %s cannot be moved under its own descendant %s", accountID, parent.Label())
		}
		if depth >= maxHierarchyDepth {
			return apperrors.NewValidationError(ErrParentCycle, "account hierarchy is deeper than %d levels", maxHierarchyDepth)
		}
		next, err := s.accountRepo.FindAccountByID(ctx, companyID, *cur.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// dangling link; the chain ends here
				return nil
			}
			return fmt.Errorf("failed to get ancestor account %s: %w", *cur.ParentAccountID, err)
		}
		cur = next
	}
	return nil
}

func validateClassification(t domain.AccountType, nb domain.NormalBalance) error {
	if !t.IsValid() {
		return apperrors.NewValidationError(ErrInvalidAccountType, "invalid account type %q", t)
	}
	if !nb.IsValid() {
		return apperrors.NewValidationError(ErrInvalidNormalBalance, "normal balance must be DR or CR, got %q", nb)
	}
	return nil
}
