package dto

import (
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GetBalanceParams selects which balance snapshot to read.
type GetBalanceParams struct {
	CurrencyCode string `form:"currency"`
	AsOf         string `form:"asOf"` // YYYY-MM-DD; defaults to today
}

// SetBalanceRequest is the administrative balance override payload. The
// override bypasses the journal and is recorded as an adjustment.
type SetBalanceRequest struct {
	Balance      decimal.Decimal `json:"balance" binding:"required"`
	AsOfDate     string          `json:"asOfDate" binding:"required,isodate"` // YYYY-MM-DD
	CurrencyCode string          `json:"currencyCode" binding:"required"`
	Reason       string          `json:"reason,omitempty"`
}

// BalanceResponse is the API representation of a balance snapshot.
type BalanceResponse struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	AsOfDate     string          `json:"asOfDate"`
}

// ToBalanceResponse converts a domain snapshot to its API representation.
func ToBalanceResponse(b *domain.AccountBalance) BalanceResponse {
	return BalanceResponse{
		AccountID:    b.AccountID,
		CurrencyCode: b.CurrencyCode,
		Balance:      b.Balance,
		AsOfDate:     b.AsOfDate.Format("2006-01-02"),
	}
}
