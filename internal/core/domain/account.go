package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceSheetBucket is the presentation grouping an account falls into on a
// balance sheet.
type BalanceSheetBucket string

const (
	CurrentAsset      BalanceSheetBucket = "CURRENT_ASSET"
	FixedAsset        BalanceSheetBucket = "FIXED_ASSET"
	OtherAsset        BalanceSheetBucket = "OTHER_ASSET"
	CurrentLiability  BalanceSheetBucket = "CURRENT_LIABILITY"
	LongTermLiability BalanceSheetBucket = "LONG_TERM_LIABILITY"
	EquityBucket      BalanceSheetBucket = "EQUITY"
)

// Account represents an entry in the chart of accounts.
// Codes follow the school convention: 1xxx asset, 2xxx liability, 3xxx equity,
// 4xxx revenue, 5xxx expense. The convention is not enforced at creation time,
// which is why classification has a keyword fallback.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary key (UUID)
	Code            string      `json:"code"`      // Unique, conventionally numeric-range encoded
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID"` // Optional self-reference, e.g. bank sub-accounts
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"` // Soft delete flag; accounts are never hard-deleted once referenced
	AuditFields
}
