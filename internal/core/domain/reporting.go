package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportLineItem is one account's contribution to a financial report section.
type ReportLineItem struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"` // Share of the section total, 0..100
}

// IncomeStatement reports Revenue minus Expenses over a date range (a flow,
// not a snapshot). Opening/closing entries are excluded from the aggregation.
type IncomeStatement struct {
	FromDate          time.Time        `json:"fromDate"`
	ToDate            time.Time        `json:"toDate"`
	Revenue           []ReportLineItem `json:"revenue"`
	Expenses          []ReportLineItem `json:"expenses"`
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses     decimal.Decimal  `json:"totalExpenses"`
	NetIncome         decimal.Decimal  `json:"netIncome"`
	GrossProfitMargin decimal.Decimal  `json:"grossProfitMargin"` // Percent; zero when there is no revenue
}

// BalanceSheet reports Asset/Liability/Equity balances as of one date, grouped
// into presentation buckets. Equity carries a synthetic "Current Period Net
// Income" line so the accounting equation holds before the period is closed.
type BalanceSheet struct {
	AsOf                time.Time        `json:"asOf"`
	CurrentAssets       []ReportLineItem `json:"currentAssets"`
	FixedAssets         []ReportLineItem `json:"fixedAssets"`
	OtherAssets         []ReportLineItem `json:"otherAssets"`
	CurrentLiabilities  []ReportLineItem `json:"currentLiabilities"`
	LongTermLiabilities []ReportLineItem `json:"longTermLiabilities"`
	Equity              []ReportLineItem `json:"equity"`
	TotalAssets         decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities    decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity         decimal.Decimal  `json:"totalEquity"`
	Balanced            bool             `json:"balanced"` // totalAssets == totalLiabilities + totalEquity within epsilon
}

// CashFlowStatement reclassifies cash/bank postings by their contra account
// over a date range.
type CashFlowStatement struct {
	FromDate      time.Time        `json:"fromDate"`
	ToDate        time.Time        `json:"toDate"`
	Inflows       []ReportLineItem `json:"inflows"`
	Outflows      []ReportLineItem `json:"outflows"`
	TotalInflows  decimal.Decimal  `json:"totalInflows"`
	TotalOutflows decimal.Decimal  `json:"totalOutflows"`
	NetCashFlow   decimal.Decimal  `json:"netCashFlow"`
	BeginningCash decimal.Decimal  `json:"beginningCash"` // Cash/bank balance strictly before FromDate
	EndingCash    decimal.Decimal  `json:"endingCash"`
}

// TrialBalanceRow is one account's total debits and credits as of a date.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LedgerRowSource identifies which bookkeeping table a general-ledger row was
// projected from.
type LedgerRowSource string

const (
	SourceJournalLine       LedgerRowSource = "JOURNAL_LINE"
	SourceBalanceAdjustment LedgerRowSource = "BALANCE_ADJUSTMENT"
)

// LedgerRow is the common projection all general-ledger sources map into.
// Rows from every source are merge-sorted by date descending and paginated
// in memory.
type LedgerRow struct {
	Source          LedgerRowSource `json:"source"`
	AccountID       string          `json:"accountID"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	TransactionType string          `json:"transactionType"` // DEBIT, CREDIT or ADJUSTMENT
}
