package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
	"github.com/schoolerp/ledger_backend/internal/models"
	"github.com/schoolerp/ledger_backend/internal/utils/mapping"
)

const balanceColumns = `balance_id, account_id, currency_code, balance, as_of_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for balance snapshots.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

func scanBalance(row pgx.Row) (*models.AccountBalance, error) {
	var m models.AccountBalance
	err := row.Scan(
		&m.BalanceID,
		&m.AccountID,
		&m.CurrencyCode,
		&m.Balance,
		&m.AsOfDate,
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

// FindLatestBalance returns the snapshot with the greatest as_of_date <= asOf,
// or nil when none exists yet.
func (r *PgxBalanceRepository) FindLatestBalance(ctx context.Context, accountID, currencyCode string, asOf time.Time) (*domain.AccountBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM account_balances
		WHERE account_id = $1 AND currency_code = $2 AND as_of_date <= $3
		ORDER BY as_of_date DESC
		LIMIT 1;
	`
	m, err := scanBalance(r.Pool.QueryRow(ctx, query, accountID, currencyCode, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find balance for account "+accountID, err)
	}
	balance := mapping.ToDomainAccountBalance(*m)
	return &balance, nil
}

func (r *PgxBalanceRepository) HasNonzeroBalance(ctx context.Context, accountID string, asOf time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM (
				SELECT DISTINCT ON (currency_code) balance
				FROM account_balances
				WHERE account_id = $1 AND as_of_date <= $2
				ORDER BY currency_code, as_of_date DESC
			) latest
			WHERE latest.balance <> 0
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check balances for account "+accountID, err)
	}
	return exists, nil
}

// ApplyDeltasInTx folds signed deltas into the snapshot ledger inside the
// caller's transaction. The snapshot row for the exact effective date is
// updated in place; otherwise a new row is seeded from the prior balance.
// Snapshots dated after the effective date are shifted too, so back-dated
// postings keep later reads consistent.
func (r *PgxBalanceRepository) ApplyDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, userID string, now time.Time) error {
	selectQuery := `
		SELECT balance_id, balance, as_of_date
		FROM account_balances
		WHERE account_id = $1 AND currency_code = $2 AND as_of_date <= $3
		ORDER BY as_of_date DESC
		LIMIT 1
		FOR UPDATE;
	`
	updateQuery := `
		UPDATE account_balances
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE balance_id = $1;
	`
	insertQuery := `
		INSERT INTO account_balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	shiftLaterQuery := `
		UPDATE account_balances
		SET balance = balance + $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1 AND currency_code = $2 AND as_of_date > $3;
	`

	for _, delta := range deltas {
		var balanceID string
		var prior decimal.Decimal
		var asOfDate time.Time
		err := tx.QueryRow(ctx, selectQuery, delta.AccountID, delta.CurrencyCode, delta.EffectiveDate).Scan(&balanceID, &prior, &asOfDate)
		switch {
		case err == nil && asOfDate.Equal(delta.EffectiveDate):
			if _, err := tx.Exec(ctx, updateQuery, balanceID, delta.Delta, now, userID); err != nil {
				return apperrors.NewAppError(500, "failed to update balance snapshot for account "+delta.AccountID, err)
			}
		case err == nil || errors.Is(err, pgx.ErrNoRows):
			// No snapshot on the effective date; seed one from the prior
			// balance (zero when the account has no history yet).
			if _, err := tx.Exec(ctx, insertQuery,
				uuid.NewString(),
				delta.AccountID,
				delta.CurrencyCode,
				prior.Add(delta.Delta),
				delta.EffectiveDate,
				now, userID, now, userID,
			); err != nil {
				return apperrors.NewAppError(500, "failed to insert balance snapshot for account "+delta.AccountID, err)
			}
		default:
			return apperrors.NewAppError(500, "failed to read balance snapshot for account "+delta.AccountID, err)
		}

		if _, err := tx.Exec(ctx, shiftLaterQuery, delta.AccountID, delta.CurrencyCode, delta.EffectiveDate, delta.Delta, now, userID); err != nil {
			return apperrors.NewAppError(500, "failed to shift later balance snapshots for account "+delta.AccountID, err)
		}
	}
	return nil
}

// OverrideBalance writes a snapshot directly and records the adjustment audit
// row in one transaction.
func (r *PgxBalanceRepository) OverrideBalance(ctx context.Context, adjustment domain.BalanceAdjustment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBalanceAdjustment(adjustment)

	upsertQuery := `
		INSERT INTO account_balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id, currency_code, as_of_date)
		DO UPDATE SET balance = EXCLUDED.balance,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, upsertQuery,
		uuid.NewString(),
		m.AccountID,
		m.CurrencyCode,
		m.NewBalance,
		m.AsOfDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to write balance override for account "+m.AccountID, err)
	}

	adjustmentQuery := `
		INSERT INTO balance_adjustments (adjustment_id, account_id, currency_code, previous_balance, new_balance, as_of_date, reason, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, adjustmentQuery,
		m.AdjustmentID,
		m.AccountID,
		m.CurrencyCode,
		m.PreviousBalance,
		m.NewBalance,
		m.AsOfDate,
		m.Reason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record balance adjustment for account "+m.AccountID, err)
	}

	return r.Commit(ctx, tx)
}

// ListAdjustmentsByAccount returns the adjustment audit rows for an account,
// newest first.
func (r *PgxBalanceRepository) ListAdjustmentsByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.BalanceAdjustment, error) {
	query := `
		SELECT adjustment_id, account_id, currency_code, previous_balance, new_balance, as_of_date, reason, created_at, created_by, last_updated_at, last_updated_by
		FROM balance_adjustments
		WHERE account_id = $1
	`
	args := []interface{}{accountID}
	if from != nil {
		args = append(args, *from)
		query += ` AND as_of_date >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND as_of_date <= $3`
		} else {
			query += ` AND as_of_date <= $2`
		}
	}
	query += ` ORDER BY as_of_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance adjustments for account "+accountID, err)
	}
	defer rows.Close()

	var adjustments []domain.BalanceAdjustment
	for rows.Next() {
		var m models.BalanceAdjustment
		err := rows.Scan(
			&m.AdjustmentID,
			&m.AccountID,
			&m.CurrencyCode,
			&m.PreviousBalance,
			&m.NewBalance,
			&m.AsOfDate,
			&m.Reason,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance adjustment row", err)
		}
		adjustments = append(adjustments, mapping.ToDomainBalanceAdjustment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance adjustment rows", err)
	}
	return adjustments, nil
}
