package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
)

// NewRepoContainer wires every Postgres repository over a shared pool.
// The journal and period repositories share the account and balance
// repositories so posting and closing reuse the same locking and snapshot
// logic.
func NewRepoContainer(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	balanceRepo := newPgxBalanceRepository(pool)
	journalRepo := newPgxJournalRepository(pool, accountRepo, balanceRepo)
	periodRepo := newPgxPeriodRepository(pool, accountRepo, balanceRepo)
	currencyRepo := newPgxCurrencyRepository(pool)
	reportingRepo := newPgxReportingRepository(pool)

	return portsrepo.RepositoryProvider{
		Account:   accountRepo,
		Journal:   journalRepo,
		Balance:   balanceRepo,
		Period:    periodRepo,
		Currency:  currencyRepo,
		Reporting: reportingRepo,
		LedgerSources: []portsrepo.LedgerSource{
			newJournalLineLedgerSource(pool),
			newBalanceAdjustmentLedgerSource(balanceRepo),
		},
	}
}
