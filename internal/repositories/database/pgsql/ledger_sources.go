package pgsql

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
)

// journalLineLedgerSource projects journal lines into general-ledger rows.
type journalLineLedgerSource struct {
	BaseRepository
}

func newJournalLineLedgerSource(pool *pgxpool.Pool) portsrepo.LedgerSource {
	return &journalLineLedgerSource{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerSource = (*journalLineLedgerSource)(nil)

func (s *journalLineLedgerSource) Source() domain.LedgerRowSource {
	return domain.SourceJournalLine
}

func (s *journalLineLedgerSource) FetchRows(ctx context.Context, accountID string, q portsrepo.LedgerQuery) ([]domain.LedgerRow, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT l.debit, l.credit, COALESCE(NULLIF(l.description, ''), e.description), e.entry_date
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
	`)
	args := []interface{}{accountID}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		p := "$" + strconv.Itoa(len(args))
		sb.WriteString(` AND (l.description ILIKE ` + p + ` OR e.description ILIKE ` + p + ` OR e.reference ILIKE ` + p + `)`)
	}
	if q.FromDate != nil {
		args = append(args, *q.FromDate)
		sb.WriteString(` AND e.entry_date >= $` + strconv.Itoa(len(args)))
	}
	if q.ToDate != nil {
		args = append(args, *q.ToDate)
		sb.WriteString(` AND e.entry_date <= $` + strconv.Itoa(len(args)))
	}
	sb.WriteString(` ORDER BY e.entry_date DESC, l.line_id DESC`)

	rows, err := s.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger journal lines", err)
	}
	defer rows.Close()

	var out []domain.LedgerRow
	for rows.Next() {
		row := domain.LedgerRow{Source: domain.SourceJournalLine, AccountID: accountID}
		if err := rows.Scan(&row.Debit, &row.Credit, &row.Description, &row.TransactionDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger journal line", err)
		}
		if row.Debit.IsPositive() {
			row.TransactionType = "DEBIT"
		} else {
			row.TransactionType = "CREDIT"
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger journal lines", err)
	}
	return out, nil
}

// balanceAdjustmentLedgerSource projects manual balance overrides into
// general-ledger rows so corrections stay visible next to the entries they
// bypassed.
type balanceAdjustmentLedgerSource struct {
	balanceRepo portsrepo.BalanceRepositoryFacade
}

func newBalanceAdjustmentLedgerSource(balanceRepo portsrepo.BalanceRepositoryFacade) portsrepo.LedgerSource {
	return &balanceAdjustmentLedgerSource{balanceRepo: balanceRepo}
}

var _ portsrepo.LedgerSource = (*balanceAdjustmentLedgerSource)(nil)

func (s *balanceAdjustmentLedgerSource) Source() domain.LedgerRowSource {
	return domain.SourceBalanceAdjustment
}

func (s *balanceAdjustmentLedgerSource) FetchRows(ctx context.Context, accountID string, q portsrepo.LedgerQuery) ([]domain.LedgerRow, error) {
	adjustments, err := s.balanceRepo.ListAdjustmentsByAccount(ctx, accountID, q.FromDate, q.ToDate)
	if err != nil {
		return nil, err
	}

	var out []domain.LedgerRow
	for _, adj := range adjustments {
		description := adj.Reason
		if description == "" {
			description = "Balance adjustment"
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(description), strings.ToLower(q.Search)) {
			continue
		}
		row := domain.LedgerRow{
			Source:          domain.SourceBalanceAdjustment,
			AccountID:       adj.AccountID,
			Description:     description,
			TransactionDate: adj.AsOfDate,
			TransactionType: "ADJUSTMENT",
		}
		delta := adj.NewBalance.Sub(adj.PreviousBalance)
		if delta.Sign() >= 0 {
			row.Debit = delta
			row.Credit = decimal.Zero
		} else {
			row.Debit = decimal.Zero
			row.Credit = delta.Abs()
		}
		out = append(out, row)
	}
	return out, nil
}
