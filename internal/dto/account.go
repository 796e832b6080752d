package dto

import (
	"time"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string               `json:"code" binding:"required,max=50"`
	Name            string               `json:"name" binding:"required,max=200"`
	AccountType     domain.AccountType   `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentAccountID *string              `json:"parentAccountID" binding:"omitempty,uuid"`
	IsPosting       *bool                `json:"isPosting"` // defaults to true
	NormalBalance   domain.NormalBalance `json:"normalBalance" binding:"required,oneof=DR CR"`
	Level           int                  `json:"level" binding:"omitempty,min=1"` // defaults to 1
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Code            *string               `json:"code" binding:"omitempty,min=1,max=50"`
	Name            *string               `json:"name" binding:"omitempty,min=1,max=200"`
	AccountType     *domain.AccountType   `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentAccountID *string               `json:"parentAccountID" binding:"omitempty,uuid"`
	IsPosting       *bool                 `json:"isPosting"`
	NormalBalance   *domain.NormalBalance `json:"normalBalance" binding:"omitempty,oneof=DR CR"`
	Level           *int                  `json:"level" binding:"omitempty,min=1"`
	IsActive        *bool                 `json:"isActive"`
}

// AccountURI binds the account id path parameter.
type AccountURI struct {
	AccountID string `uri:"accountID" binding:"required,uuid"`
}

// ListAccountsParams defines query parameters for the chart of accounts.
type ListAccountsParams struct {
	IncludeInactive bool `form:"includeInactive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	ParentAccountID *string              `json:"parentAccountID,omitempty"`
	IsPosting       bool                 `json:"isPosting"`
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	Level           int                  `json:"level"`
	IsActive        bool                 `json:"isActive"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		IsPosting:       acc.IsPosting,
		NormalBalance:   acc.NormalBalance,
		Level:           acc.Level,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
