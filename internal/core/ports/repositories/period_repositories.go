package repositories

import (
	"context"
	"time"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
)

// PeriodRepositoryFacade defines persistence operations for accounting periods
// and the close batch.
type PeriodRepositoryFacade interface {
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)
	FindPeriodByRange(ctx context.Context, start, end time.Time) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, status *domain.PeriodStatus, limit, offset int) ([]domain.AccountingPeriod, error)

	// ClosePeriod persists the closing entries (each with its lines), applies
	// the balance deltas, and marks the period CLOSED in one atomic
	// transaction. Entries carry their lines in entry.Lines.
	ClosePeriod(ctx context.Context, period domain.AccountingPeriod, entries []domain.JournalEntry, deltas []domain.BalanceDelta, userID string) error
}
