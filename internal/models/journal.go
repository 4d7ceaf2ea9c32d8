package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes normal postings from the ledger's own
// opening-balance and closing entries.
type EntryKind string

const (
	KindNormal         EntryKind = "NORMAL"
	KindOpeningBalance EntryKind = "OPENING_BALANCE"
	KindClosingEntry   EntryKind = "CLOSING_ENTRY"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID     string    `db:"entry_id"`
	EntryDate   time.Time `db:"entry_date"`
	Reference   string    `db:"reference"`
	Description string    `db:"description"`
	Kind        EntryKind `db:"kind"`
	AuditFields
}

// JournalLine is the journal_lines table row. Lines are exclusively owned by
// their entry and deleted by cascade with it.
type JournalLine struct {
	LineID       string           `db:"line_id"`
	EntryID      string           `db:"entry_id"`
	AccountID    string           `db:"account_id"`
	CurrencyCode string           `db:"currency_code"`
	Debit        decimal.Decimal  `db:"debit"`
	Credit       decimal.Decimal  `db:"credit"`
	Description  string           `db:"description"`
	ExchangeRate *decimal.Decimal `db:"exchange_rate"` // Nullable
	AuditFields
	// Joined columns for account-scoped listings.
	EntryDate        time.Time `db:"entry_date"`
	EntryReference   string    `db:"entry_reference"`
	EntryDescription string    `db:"entry_description"`
	EntryKind        EntryKind `db:"entry_kind"`
}
