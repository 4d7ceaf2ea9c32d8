package services

import (
	"context"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

// JournalSvcFacade exposes journal entry operations. PostEntry is the single
// write path used by every posting module (fees, payroll, expenses, boarding).
type JournalSvcFacade interface {
	PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	ListAccountLines(ctx context.Context, accountID string, params dto.ListAccountLinesParams) (*dto.AccountLedgerResponse, error)

	// BuildEntry validates and assembles an entry with its lines and balance
	// deltas without persisting it. The period close uses it so closing
	// entries commit atomically with the period status change.
	BuildEntry(ctx context.Context, req dto.PostEntryRequest, kind domain.EntryKind, creatorUserID string) (*domain.JournalEntry, []domain.JournalLine, []domain.BalanceDelta, error)
}
