package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the account_balances table row. One row per
// (account, currency, as_of_date); the latest row <= a target date is the
// effective balance at that date.
type AccountBalance struct {
	BalanceID    string          `db:"balance_id"`
	AccountID    string          `db:"account_id"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	AsOfDate     time.Time       `db:"as_of_date"`
	AuditFields
}

// BalanceAdjustment is the balance_adjustments table row, the audit trail for
// administrative balance overrides.
type BalanceAdjustment struct {
	AdjustmentID    string          `db:"adjustment_id"`
	AccountID       string          `db:"account_id"`
	CurrencyCode    string          `db:"currency_code"`
	PreviousBalance decimal.Decimal `db:"previous_balance"`
	NewBalance      decimal.Decimal `db:"new_balance"`
	AsOfDate        time.Time       `db:"as_of_date"`
	Reason          string          `db:"reason"`
	AuditFields
}
