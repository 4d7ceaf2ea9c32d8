package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	args := m.Called(ctx, accountID, requestingUserID)
	return args.Error(0)
}

// --- Mock JournalService ---

type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockJournalService) ListAccountLines(ctx context.Context, accountID string, params dto.ListAccountLinesParams) (*dto.AccountLedgerResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountLedgerResponse), args.Error(1)
}

func (m *MockJournalService) BuildEntry(ctx context.Context, req dto.PostEntryRequest, kind domain.EntryKind, creatorUserID string) (*domain.JournalEntry, []domain.JournalLine, []domain.BalanceDelta, error) {
	args := m.Called(ctx, req, kind, creatorUserID)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).([]domain.JournalLine), args.Get(2).([]domain.BalanceDelta), args.Error(3)
}

// --- Mock BalanceService ---

type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

func (m *MockBalanceService) GetBalance(ctx context.Context, accountID string, currencyCode string, asOf time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, currencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceService) SetBalance(ctx context.Context, accountID string, req dto.SetBalanceRequest, requestingUserID string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

// --- Mock ReportingService ---

type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) GetIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}

func (m *MockReportingService) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockReportingService) GetCashFlowStatement(ctx context.Context, from, to time.Time) (*domain.CashFlowStatement, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowStatement), args.Error(1)
}

func (m *MockReportingService) GetTrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingService) GetGeneralLedger(ctx context.Context, accountID string, params dto.GeneralLedgerParams) (*dto.GeneralLedgerResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GeneralLedgerResponse), args.Error(1)
}

// --- Mock PeriodService ---

type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, params dto.ListPeriodsParams) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, periodID string, requestingUserID string) (*dto.ClosePeriodResponse, error) {
	args := m.Called(ctx, periodID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClosePeriodResponse), args.Error(1)
}

// --- Mock CurrencyService ---

type MockCurrencyService struct {
	mock.Mock
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// newTestContainer bundles fresh mocks into a service container for route
// registration.
func newTestContainer() (*portssvc.ServiceContainer, *MockAccountService, *MockJournalService, *MockBalanceService, *MockReportingService, *MockPeriodService, *MockCurrencyService) {
	accountSvc := new(MockAccountService)
	journalSvc := new(MockJournalService)
	balanceSvc := new(MockBalanceService)
	reportingSvc := new(MockReportingService)
	periodSvc := new(MockPeriodService)
	currencySvc := new(MockCurrencyService)

	container := &portssvc.ServiceContainer{
		Account:   accountSvc,
		Journal:   journalSvc,
		Balance:   balanceSvc,
		Reporting: reportingSvc,
		Period:    periodSvc,
		Currency:  currencySvc,
	}
	return container, accountSvc, journalSvc, balanceSvc, reportingSvc, periodSvc, currencySvc
}
