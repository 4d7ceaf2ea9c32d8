package repositories

// RepositoryProvider bundles all repositories so the service container can be
// wired from a single value.
type RepositoryProvider struct {
	Account   AccountRepositoryFacade
	Journal   JournalRepositoryFacade
	Balance   BalanceRepositoryFacade
	Period    PeriodRepositoryFacade
	Currency  CurrencyRepositoryFacade
	Reporting ReportingRepository
	// LedgerSources feed the general-ledger union view in registration order.
	LedgerSources []LedgerSource
}
