package services

// ServiceContainer bundles every service facade for handler registration.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Balance   BalanceSvcFacade
	Reporting ReportingSvcFacade
	Period    PeriodSvcFacade
	Currency  CurrencySvcFacade
}
