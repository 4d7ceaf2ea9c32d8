package repositories

import (
	"context"
	"time"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
)

// ListAccountLinesQuery filters and paginates the per-account line listing.
type ListAccountLinesQuery struct {
	Search   string // Matched against line and entry descriptions and reference
	FromDate *time.Time
	ToDate   *time.Time
	Side     string // "DEBIT", "CREDIT" or empty for both
	Page     int    // 1-based
	Limit    int
}

// JournalRepositoryFacade defines persistence operations for journal entries
// and their lines.
type JournalRepositoryFacade interface {
	// SaveEntry persists the entry, its lines and the resulting balance
	// snapshot updates as one atomic transaction. Nothing is persisted on error.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, deltas []domain.BalanceDelta) error

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries pages through entries newest-first using an opaque cursor token.
	ListEntries(ctx context.Context, limit int, nextToken *string, kinds []domain.EntryKind) ([]domain.JournalEntry, *string, error)

	// ListLinesByAccount returns one page of lines for an account joined with
	// entry metadata, ordered entry_date descending then line id descending,
	// along with the total row count for the filter.
	ListLinesByAccount(ctx context.Context, accountID string, q ListAccountLinesQuery) ([]domain.JournalLine, int64, error)
}
