package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes normal business postings from the ledger's own
// self-referential entries. Reports filter on this field so that opening
// balances and closing entries are never double counted.
type EntryKind string

const (
	KindNormal         EntryKind = "NORMAL"
	KindOpeningBalance EntryKind = "OPENING_BALANCE"
	KindClosingEntry   EntryKind = "CLOSING_ENTRY"
)

// Description tags carried on opening/closing entries. Filtering is driven by
// EntryKind; these strings remain on the entries for human readers and as a
// fallback exclusion for rows imported without a kind.
const (
	DescOpeningBalancesBD    = "Opening Balances B/D"
	DescOpeningBalancePrefix = "Opening Balance:"
	DescCloseToIncomeSummary = "Close %s to Income Summary"
	DescCloseIncomeSummary   = "Close Income Summary to Retained Earnings"
)

// IsSelfEntryDescription reports whether a description carries one of the
// opening/closing tags above. The closing check is anchored to the full
// "Close <account> to Income Summary" form so that ordinary entries merely
// mentioning Income Summary are not excluded from reports.
func IsSelfEntryDescription(desc string) bool {
	switch {
	case strings.HasPrefix(desc, "Opening Balance"):
		return true
	case desc == DescCloseIncomeSummary:
		return true
	case strings.HasPrefix(desc, "Close ") && strings.HasSuffix(desc, " to Income Summary"):
		return true
	}
	return false
}

// JournalEntry is an atomic, balanced group of debit/credit lines recording one
// business event. Invariant: sum(lines.Debit) == sum(lines.Credit) and
// len(Lines) >= 2 for every accepted entry.
type JournalEntry struct {
	EntryID     string    `json:"entryID"`   // Primary key (UUID)
	EntryDate   time.Time `json:"entryDate"` // Date the event occurred
	Reference   string    `json:"reference"` // External correlation id, e.g. receipt number
	Description string    `json:"description"`
	Kind        EntryKind `json:"kind"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"` // Often loaded separately
}

// JournalLine is a single posting within an entry, affecting one account in
// one currency. Exactly one of Debit/Credit is nonzero.
type JournalLine struct {
	LineID       string           `json:"lineID"`  // Primary key (UUID)
	EntryID      string           `json:"entryID"` // Owning entry; cascades on entry delete
	AccountID    string           `json:"accountID"`
	CurrencyCode string           `json:"currencyCode"`
	Debit        decimal.Decimal  `json:"debit"`  // >= 0
	Credit       decimal.Decimal  `json:"credit"` // >= 0
	Description  string           `json:"description"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"` // Set when line currency differs from base
	AuditFields
	// Joined entry metadata, populated by account-scoped listings.
	EntryDate        time.Time `json:"entryDate,omitempty"`
	EntryReference   string    `json:"entryReference,omitempty"`
	EntryDescription string    `json:"entryDescription,omitempty"`
	EntryKind        EntryKind `json:"entryKind,omitempty"`
}

// Side reports which side of the ledger the line sits on.
func (l JournalLine) Side() string {
	if l.Debit.IsPositive() {
		return "DEBIT"
	}
	return "CREDIT"
}

// Amount returns the nonzero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}
