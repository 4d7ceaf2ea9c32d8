package dto

import (
	"github.com/schoolerp/ledger_backend/internal/core/domain"
)

// CreateAccountRequest is the payload for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
	Description     string             `json:"description,omitempty"`
}

// ListAccountsParams filters the account listing.
type ListAccountsParams struct {
	AccountType string `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsActive    *bool  `form:"isActive"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID       string `json:"accountID"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	AccountType     string `json:"accountType"`
	ParentAccountID string `json:"parentAccountID,omitempty"`
	Description     string `json:"description,omitempty"`
	IsActive        bool   `json:"isActive"`
	CreatedAt       string `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
