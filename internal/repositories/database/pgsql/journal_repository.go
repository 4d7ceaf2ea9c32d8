package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
	"github.com/schoolerp/ledger_backend/internal/models"
	"github.com/schoolerp/ledger_backend/internal/utils/mapping"
	"github.com/schoolerp/ledger_backend/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_date, reference, description, kind, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entries and
// lines. The account and balance repositories participate in the posting
// transaction.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		balanceRepo:    balanceRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// insertEntryWithLines queues the entry and line inserts on the transaction.
func insertEntryWithLines(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryDate,
		m.Reference,
		m.Description,
		m.Kind,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, currency_code, debit, credit, description, exchange_rate, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.CurrencyCode,
			ml.Debit,
			ml.Credit,
			ml.Description,
			ml.ExchangeRate,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+m.EntryID, err)
	}
	return nil
}

// SaveEntry persists the entry, its lines and the balance snapshot updates in
// one transaction. Account rows are locked first so concurrent postings that
// touch the same accounts serialize instead of losing updates.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, deltas []domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(deltas))
	for _, delta := range deltas {
		accountIDs = append(accountIDs, delta.AccountID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for entry %s: %w", entry.EntryID, err)
	}

	if err := insertEntryWithLines(ctx, tx, entry, lines); err != nil {
		return err
	}

	if err := r.balanceRepo.ApplyDeltasInTx(ctx, tx, deltas, entry.CreatedBy, entry.CreatedAt); err != nil {
		return fmt.Errorf("failed to apply balance deltas for entry %s: %w", entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.Kind,
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

// FindEntryByID retrieves an entry without its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines of one entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, currency_code, debit, credit, description, exchange_rate, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	var lines []models.JournalLine
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.CurrencyCode,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.ExchangeRate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntries pages through entries newest-first using an opaque cursor over
// (entry_date, created_at). An optional kind filter narrows the listing.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, kinds []domain.EntryKind) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []interface{}{}

	if len(kinds) > 0 {
		kindStrings := make([]string, len(kinds))
		for i, k := range kinds {
			kindStrings[i] = string(k)
		}
		args = append(args, kindStrings)
		query += fmt.Sprintf(" AND kind = ANY($%d)", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += fmt.Sprintf(" AND (entry_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += " ORDER BY entry_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// ListLinesByAccount returns one page of an account's lines joined with entry
// metadata, newest entry first, plus the total count for the filter.
func (r *PgxJournalRepository) ListLinesByAccount(ctx context.Context, accountID string, q portsrepo.ListAccountLinesQuery) ([]domain.JournalLine, int64, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.account_id, l.currency_code, l.debit, l.credit, l.description, l.exchange_rate,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.entry_date, e.reference, e.description, e.kind,
		       COUNT(*) OVER() AS total_count
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
	`
	args := []interface{}{accountID}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := strconv.Itoa(len(args))
		baseQuery += ` AND (l.description ILIKE $` + n + ` OR e.description ILIKE $` + n + ` OR e.reference ILIKE $` + n + `)`
	}
	if q.FromDate != nil {
		args = append(args, *q.FromDate)
		baseQuery += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if q.ToDate != nil {
		args = append(args, *q.ToDate)
		baseQuery += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}
	switch q.Side {
	case "DEBIT":
		baseQuery += ` AND l.debit > 0`
	case "CREDIT":
		baseQuery += ` AND l.credit > 0`
	}

	args = append(args, limit, (page-1)*limit)
	baseQuery += fmt.Sprintf(" ORDER BY e.entry_date DESC, l.line_id DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	var lines []models.JournalLine
	var total int64
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.CurrencyCode,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.ExchangeRate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.EntryDate,
			&m.EntryReference,
			&m.EntryDescription,
			&m.EntryKind,
			&total,
		)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), total, nil
}
