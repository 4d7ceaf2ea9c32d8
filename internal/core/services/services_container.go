package services

import (
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service from the repository provider.
// cashAccountCodes selects the cash/bank accounts for the cash flow report;
// closingCodes names the accounts the period close posts against.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cashAccountCodes []string, closingCodes ClosingAccountCodes) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.Account, repos.Balance)
	currencySvc := NewCurrencyService(repos.Currency)
	journalSvc := NewJournalService(repos.Journal, accountSvc, currencySvc)
	balanceSvc := NewBalanceService(repos.Balance, accountSvc, currencySvc)
	reportingSvc := NewReportingService(repos.Reporting, repos.LedgerSources, accountSvc, cashAccountCodes)
	periodSvc := NewPeriodService(repos.Period, repos.Reporting, journalSvc, accountSvc, currencySvc, closingCodes)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Journal:   journalSvc,
		Balance:   balanceSvc,
		Reporting: reportingSvc,
		Period:    periodSvc,
		Currency:  currencySvc,
	}
}
