package repositories

import (
	"context"
	"time"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountNetAmount is one account's aggregated amount from a report query.
type AccountNetAmount struct {
	AccountID   string
	AccountCode string
	Name        string
	Amount      decimal.Decimal
}

// BalanceSheetRow pairs an account with its effective balance as of a date.
type BalanceSheetRow struct {
	Account domain.Account
	Balance decimal.Decimal
}

// ReportingRepository defines the read-only aggregation queries behind the
// financial reports. None of these mutate data.
type ReportingRepository interface {
	// GetIncomeStatementData sums credits per active revenue account and debits
	// per active expense account over NORMAL entries in the range.
	GetIncomeStatementData(ctx context.Context, from, to time.Time) (revenue, expenses []AccountNetAmount, err error)

	// GetBalanceSheetRows returns the latest nonzero balance per active
	// asset/liability/equity account as of the date.
	GetBalanceSheetRows(ctx context.Context, asOf time.Time) ([]BalanceSheetRow, error)

	// GetRevenueExpenseBalances returns the net revenue-minus-expense balance
	// as of the date, used for the synthetic current-period net income line.
	GetRevenueExpenseBalances(ctx context.Context, asOf time.Time) (decimal.Decimal, error)

	// GetCashFlowData buckets contra lines of entries touching the cash/bank
	// accounts: inflows from entries debiting cash, outflows from entries
	// crediting cash. NORMAL entries only.
	GetCashFlowData(ctx context.Context, from, to time.Time, cashAccountCodes []string) (inflows, outflows []AccountNetAmount, err error)

	// GetCashBalanceBefore returns the total cash/bank balance strictly before
	// the given date.
	GetCashBalanceBefore(ctx context.Context, before time.Time, cashAccountCodes []string) (decimal.Decimal, error)

	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

// LedgerQuery filters a general-ledger source fetch.
type LedgerQuery struct {
	Search   string
	FromDate *time.Time
	ToDate   *time.Time
}

// LedgerSource is the common projection interface for the general-ledger
// union view. Every bookkeeping representation (journal lines, balance
// adjustments) maps its rows into domain.LedgerRow; the service merge-sorts
// across sources.
type LedgerSource interface {
	Source() domain.LedgerRowSource
	FetchRows(ctx context.Context, accountID string, q LedgerQuery) ([]domain.LedgerRow, error)
}
