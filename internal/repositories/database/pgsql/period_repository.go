package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
	"github.com/schoolerp/ledger_backend/internal/models"
	"github.com/schoolerp/ledger_backend/internal/utils/mapping"
)

const periodColumns = `period_id, period_name, period_type, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// newPgxPeriodRepository creates a new repository for accounting periods.
func newPgxPeriodRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		balanceRepo:    balanceRepo,
	}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (*models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.PeriodType,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePeriod inserts a new period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.Name,
		m.PeriodType,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert period "+m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1;`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period "+periodID, err)
	}
	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// FindPeriodByRange retrieves the period with exactly the given bounds.
func (r *PgxPeriodRepository) FindPeriodByRange(ctx context.Context, start, end time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE start_date = $1 AND end_date = $2;`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period by range", err)
	}
	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// ListPeriods lists periods newest first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, status *domain.PeriodStatus, limit, offset int) ([]domain.AccountingPeriod, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + periodColumns + ` FROM accounting_periods`
	args := []interface{}{}
	if status != nil {
		args = append(args, string(*status))
		query += ` WHERE status = $1`
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY start_date DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list periods", err)
	}
	defer rows.Close()

	var periods []domain.AccountingPeriod
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows", err)
	}
	return periods, nil
}

// ClosePeriod persists the closing entries with their lines, applies the
// balance deltas and flips the period to CLOSED, all in one transaction. The
// status update is guarded on the current OPEN status so two concurrent
// closes cannot both succeed.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, period domain.AccountingPeriod, entries []domain.JournalEntry, deltas []domain.BalanceDelta, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(deltas))
	for _, delta := range deltas {
		accountIDs = append(accountIDs, delta.AccountID)
	}
	if len(accountIDs) > 0 {
		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return fmt.Errorf("failed to lock accounts for period close %s: %w", period.PeriodID, err)
		}
	}

	for _, entry := range entries {
		if err := insertEntryWithLines(ctx, tx, entry, entry.Lines); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	if len(deltas) > 0 {
		if err := r.balanceRepo.ApplyDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
			return fmt.Errorf("failed to apply closing balance deltas for period %s: %w", period.PeriodID, err)
		}
	}

	// Roll the balance-sheet accounts forward: seed an explicit snapshot row
	// on the first day of the next period carrying each account's closing
	// balance, so the new period starts from its own opening row. Revenue and
	// expense accounts were just zeroed, so only A/L/E rows survive the
	// nonzero filter.
	openDate := period.EndDate.AddDate(0, 0, 1)
	rollForwardQuery := `
		INSERT INTO account_balances (` + balanceColumns + `)
		SELECT gen_random_uuid()::text, s.account_id, s.currency_code, s.balance, $1, $2, $3, $2, $3
		FROM (
			SELECT DISTINCT ON (b.account_id, b.currency_code) b.account_id, b.currency_code, b.balance
			FROM account_balances b
			JOIN accounts a ON a.account_id = b.account_id
			WHERE b.as_of_date <= $4 AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
			ORDER BY b.account_id, b.currency_code, b.as_of_date DESC
		) s
		WHERE s.balance <> 0
		ON CONFLICT (account_id, currency_code, as_of_date) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, rollForwardQuery, openDate, now, userID, period.EndDate); err != nil {
		return apperrors.NewAppError(500, "failed to roll balances forward for period "+period.PeriodID, err)
	}

	statusQuery := `
		UPDATE accounting_periods
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1 AND status = $5;
	`
	tag, err := tx.Exec(ctx, statusQuery, period.PeriodID, string(domain.PeriodClosed), now, userID, string(domain.PeriodOpen))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update period status for "+period.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: period %s is not open", apperrors.ErrConflict, period.PeriodID)
	}

	return r.Commit(ctx, tx)
}
