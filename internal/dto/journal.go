package dto

import (
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryLineRequest is one line of a journal entry posting. Exactly one of
// debit/credit must be nonzero; both are validated non-negative by binding.
type PostEntryLineRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"required"`
	Debit        decimal.Decimal  `json:"debit"`
	Credit       decimal.Decimal  `json:"credit"`
	Description  string           `json:"description,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
}

// PostEntryRequest is the payload for posting a balanced journal entry.
type PostEntryRequest struct {
	EntryDate   string                 `json:"entryDate" binding:"required,isodate"` // YYYY-MM-DD, strict
	Reference   string                 `json:"reference,omitempty"`          // Caller correlation id, e.g. receipt number
	Description string                 `json:"description" binding:"required"`
	Lines       []PostEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse is the API representation of a posted line.
type JournalLineResponse struct {
	LineID           string           `json:"lineID"`
	EntryID          string           `json:"entryID"`
	AccountID        string           `json:"accountID"`
	CurrencyCode     string           `json:"currencyCode"`
	Debit            decimal.Decimal  `json:"debit"`
	Credit           decimal.Decimal  `json:"credit"`
	Description      string           `json:"description,omitempty"`
	ExchangeRate     *decimal.Decimal `json:"exchangeRate,omitempty"`
	EntryDate        string           `json:"entryDate,omitempty"`
	EntryReference   string           `json:"entryReference,omitempty"`
	EntryDescription string           `json:"entryDescription,omitempty"`
}

// JournalEntryResponse is the API representation of a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	EntryDate   string                `json:"entryDate"`
	Reference   string                `json:"reference,omitempty"`
	Description string                `json:"description"`
	Kind        string                `json:"kind"`
	CreatedBy   string                `json:"createdBy"`
	CreatedAt   string                `json:"createdAt"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
}

// ListEntriesParams paginates the entry listing with an opaque cursor.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListAccountLinesParams filters the per-account line listing.
type ListAccountLinesParams struct {
	Search   string `form:"search"`
	FromDate string `form:"from"` // YYYY-MM-DD
	ToDate   string `form:"to"`
	Side     string `form:"side" binding:"omitempty,oneof=DEBIT CREDIT"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// AccountLedgerResponse is one page of an account's ledger lines.
type AccountLedgerResponse struct {
	AccountID string                `json:"accountID"`
	Lines     []JournalLineResponse `json:"lines"`
	Page      int                   `json:"page"`
	Limit     int                   `json:"limit"`
	Total     int64                 `json:"total"`
}

// ToJournalLineResponse converts a domain line to its API representation.
func ToJournalLineResponse(l domain.JournalLine) JournalLineResponse {
	resp := JournalLineResponse{
		LineID:           l.LineID,
		EntryID:          l.EntryID,
		AccountID:        l.AccountID,
		CurrencyCode:     l.CurrencyCode,
		Debit:            l.Debit,
		Credit:           l.Credit,
		Description:      l.Description,
		ExchangeRate:     l.ExchangeRate,
		EntryReference:   l.EntryReference,
		EntryDescription: l.EntryDescription,
	}
	if !l.EntryDate.IsZero() {
		resp.EntryDate = l.EntryDate.Format("2006-01-02")
	}
	return resp
}

// ToJournalLineResponses converts a slice of domain lines.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	out := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ToJournalLineResponse(l)
	}
	return out
}

// ToJournalEntryResponse converts a domain entry, including lines when loaded.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     e.EntryID,
		EntryDate:   e.EntryDate.Format("2006-01-02"),
		Reference:   e.Reference,
		Description: e.Description,
		Kind:        string(e.Kind),
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToJournalLineResponses(e.Lines)
	}
	return resp
}

// ToJournalEntryResponses converts a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}
