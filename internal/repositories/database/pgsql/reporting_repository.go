package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
)

// normalEntryFilter excludes the ledger's self-referential entries from the
// flow reports: the kind column is authoritative, and the description
// patterns catch rows imported before the column existed.
const normalEntryFilter = `
	e.kind = 'NORMAL'
	AND e.description NOT LIKE 'Opening Balance%'
	AND e.description NOT LIKE 'Close % to Income Summary'
	AND e.description <> 'Close Income Summary to Retained Earnings'
`

// latestBalancesSubquery selects the effective snapshot per account+currency
// as of $1.
const latestBalancesSubquery = `
	SELECT DISTINCT ON (account_id, currency_code) account_id, balance
	FROM account_balances
	WHERE as_of_date <= $1
	ORDER BY account_id, currency_code, as_of_date DESC
`

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the read-only aggregation repository
// behind the financial reports.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) queryNetAmounts(ctx context.Context, query string, args ...interface{}) ([]portsrepo.AccountNetAmount, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []portsrepo.AccountNetAmount
	for rows.Next() {
		var row portsrepo.AccountNetAmount
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.Name, &row.Amount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetIncomeStatementData sums the period's net credit per revenue account and
// net debit per expense account, NORMAL entries only.
func (r *PgxReportingRepository) GetIncomeStatementData(ctx context.Context, from, to time.Time) ([]portsrepo.AccountNetAmount, []portsrepo.AccountNetAmount, error) {
	revenueQuery := `
		SELECT a.account_id, a.code, a.name, SUM(l.credit - l.debit) AS amount
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE a.account_type = 'REVENUE' AND a.is_active = TRUE
		  AND e.entry_date BETWEEN $1 AND $2
		  AND ` + normalEntryFilter + `
		GROUP BY a.account_id, a.code, a.name
		HAVING SUM(l.credit - l.debit) <> 0
		ORDER BY a.code;
	`
	revenue, err := r.queryNetAmounts(ctx, revenueQuery, from, to)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to aggregate revenue", err)
	}

	expenseQuery := `
		SELECT a.account_id, a.code, a.name, SUM(l.debit - l.credit) AS amount
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE a.account_type = 'EXPENSE' AND a.is_active = TRUE
		  AND e.entry_date BETWEEN $1 AND $2
		  AND ` + normalEntryFilter + `
		GROUP BY a.account_id, a.code, a.name
		HAVING SUM(l.debit - l.credit) <> 0
		ORDER BY a.code;
	`
	expenses, err := r.queryNetAmounts(ctx, expenseQuery, from, to)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to aggregate expenses", err)
	}
	return revenue, expenses, nil
}

// GetBalanceSheetRows returns the latest nonzero balance per active
// asset/liability/equity account as of the date, summed across currencies.
func (r *PgxReportingRepository) GetBalanceSheetRows(ctx context.Context, asOf time.Time) ([]portsrepo.BalanceSheetRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, SUM(s.balance) AS balance
		FROM (` + latestBalancesSubquery + `) s
		JOIN accounts a ON a.account_id = s.account_id
		WHERE a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY') AND a.is_active = TRUE
		GROUP BY a.account_id, a.code, a.name, a.account_type
		HAVING SUM(s.balance) <> 0
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance sheet rows", err)
	}
	defer rows.Close()

	var out []portsrepo.BalanceSheetRow
	for rows.Next() {
		var row portsrepo.BalanceSheetRow
		err := rows.Scan(
			&row.Account.AccountID,
			&row.Account.Code,
			&row.Account.Name,
			&row.Account.AccountType,
			&row.Balance,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance sheet row", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance sheet rows", err)
	}
	return out, nil
}

// GetRevenueExpenseBalances returns net revenue minus expense balances as of
// the date, the amount the synthetic net income equity line must carry.
func (r *PgxReportingRepository) GetRevenueExpenseBalances(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN a.account_type = 'REVENUE' THEN s.balance ELSE -s.balance END), 0)
		FROM (` + latestBalancesSubquery + `) s
		JOIN accounts a ON a.account_id = s.account_id
		WHERE a.account_type IN ('REVENUE', 'EXPENSE');
	`
	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, asOf).Scan(&net); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum revenue/expense balances", err)
	}
	return net, nil
}

// GetCashFlowData buckets the contra lines of entries touching the cash/bank
// accounts. Inflows come from entries that debit cash, grouped by the account
// credited; outflows mirror that.
func (r *PgxReportingRepository) GetCashFlowData(ctx context.Context, from, to time.Time, cashAccountCodes []string) ([]portsrepo.AccountNetAmount, []portsrepo.AccountNetAmount, error) {
	inflowQuery := `
		SELECT a.account_id, a.code, a.name, SUM(l.credit - l.debit) AS amount
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.entry_date BETWEEN $1 AND $2
		  AND a.code <> ALL($3)
		  AND ` + normalEntryFilter + `
		  AND EXISTS (
			SELECT 1 FROM journal_lines cl
			JOIN accounts ca ON ca.account_id = cl.account_id
			WHERE cl.entry_id = l.entry_id AND ca.code = ANY($3) AND cl.debit > 0
		  )
		GROUP BY a.account_id, a.code, a.name
		HAVING SUM(l.credit - l.debit) > 0
		ORDER BY a.code;
	`
	inflows, err := r.queryNetAmounts(ctx, inflowQuery, from, to, cashAccountCodes)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to aggregate cash inflows", err)
	}

	outflowQuery := `
		SELECT a.account_id, a.code, a.name, SUM(l.debit - l.credit) AS amount
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.entry_date BETWEEN $1 AND $2
		  AND a.code <> ALL($3)
		  AND ` + normalEntryFilter + `
		  AND EXISTS (
			SELECT 1 FROM journal_lines cl
			JOIN accounts ca ON ca.account_id = cl.account_id
			WHERE cl.entry_id = l.entry_id AND ca.code = ANY($3) AND cl.credit > 0
		  )
		GROUP BY a.account_id, a.code, a.name
		HAVING SUM(l.debit - l.credit) > 0
		ORDER BY a.code;
	`
	outflows, err := r.queryNetAmounts(ctx, outflowQuery, from, to, cashAccountCodes)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to aggregate cash outflows", err)
	}
	return inflows, outflows, nil
}

// GetCashBalanceBefore sums the cash/bank account movement strictly before the
// date. Opening balance entries count toward the cash position, so no kind
// filter applies here.
func (r *PgxReportingRepository) GetCashBalanceBefore(ctx context.Context, before time.Time, cashAccountCodes []string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit - l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE a.code = ANY($2) AND e.entry_date < $1;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, before, cashAccountCodes).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum cash balance", err)
	}
	return total, nil
}

// GetTrialBalanceData totals each active account's debits and credits up to
// the date. Closing entries are included: after a close the revenue and
// expense rows net out through the income summary.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, t.debit, t.credit
		FROM accounts a
		JOIN LATERAL (
			SELECT COALESCE(SUM(l.debit), 0) AS debit, COALESCE(SUM(l.credit), 0) AS credit
			FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE l.account_id = a.account_id AND e.entry_date <= $1
		) t ON TRUE
		WHERE a.is_active = TRUE AND (t.debit <> 0 OR t.credit <> 0)
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance", err)
	}
	defer rows.Close()

	var out []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return out, nil
}
