package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is a dated snapshot of the cumulative balance of one
// account+currency. Snapshots are versioned by as-of date: reads select the
// latest row with as_of_date <= target. Sign convention follows account type
// (debit-positive for Asset/Expense, credit-positive for the rest).
type AccountBalance struct {
	BalanceID    string          `json:"balanceID"` // Primary key (UUID)
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"` // Signed
	AsOfDate     time.Time       `json:"asOfDate"`
	AuditFields
}

// BalanceDelta is the net signed effect of a posting on one account+currency,
// applied to the snapshot ledger inside the posting transaction.
type BalanceDelta struct {
	AccountID     string
	CurrencyCode  string
	Delta         decimal.Decimal // Signed per the account type convention
	EffectiveDate time.Time
}

// BalanceAdjustment records an administrative balance override. Overrides
// bypass the journal, so every one of them leaves this explicit audit row and
// surfaces in the general ledger view.
type BalanceAdjustment struct {
	AdjustmentID    string          `json:"adjustmentID"`
	AccountID       string          `json:"accountID"`
	CurrencyCode    string          `json:"currencyCode"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	AsOfDate        time.Time       `json:"asOfDate"`
	Reason          string          `json:"reason"`
	AuditFields
}
