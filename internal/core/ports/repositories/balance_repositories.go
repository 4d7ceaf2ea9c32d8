package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
)

// BalanceRepositoryFacade defines persistence operations for versioned balance
// snapshots and administrative adjustments.
type BalanceRepositoryFacade interface {
	// FindLatestBalance returns the snapshot with the greatest as_of_date <= asOf,
	// or nil when the account+currency has no snapshot yet.
	FindLatestBalance(ctx context.Context, accountID, currencyCode string, asOf time.Time) (*domain.AccountBalance, error)

	// ApplyDeltasInTx folds signed deltas into the snapshot ledger inside an
	// open transaction: the row for the exact effective date is updated in
	// place, otherwise a new row is seeded from the prior balance. Rows are
	// locked per (account, currency) to avoid lost updates.
	ApplyDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, userID string, now time.Time) error

	// OverrideBalance writes a snapshot directly and records the adjustment
	// audit row atomically. This is the raw administrative escape hatch; it is
	// not validated against journal history.
	OverrideBalance(ctx context.Context, adjustment domain.BalanceAdjustment) error

	// HasNonzeroBalance reports whether any currency's effective snapshot for
	// the account is nonzero as of the given date.
	HasNonzeroBalance(ctx context.Context, accountID string, asOf time.Time) (bool, error)

	ListAdjustmentsByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.BalanceAdjustment, error)
}
