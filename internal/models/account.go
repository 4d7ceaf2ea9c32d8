package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the accounts table row.
// ParentAccountID maps to a nullable self-referencing foreign key.
type Account struct {
	AccountID       string      `db:"account_id"`
	Code            string      `db:"code"` // Unique
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	ParentAccountID string      `db:"parent_account_id"` // Nullable
	Description     string      `db:"description"`
	IsActive        bool        `db:"is_active"`
	AuditFields
}
