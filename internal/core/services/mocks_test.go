package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, accountID string, isActive bool, updatedBy string) error {
	args := m.Called(ctx, accountID, isActive, updatedBy)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, deltas []domain.BalanceDelta) error {
	args := m.Called(ctx, entry, lines, deltas)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, kinds []domain.EntryKind) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken, kinds)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		val := args.Get(1).(string)
		token = &val
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccount(ctx context.Context, accountID string, q portsrepo.ListAccountLinesQuery) ([]domain.JournalLine, int64, error) {
	args := m.Called(ctx, accountID, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JournalLine), args.Get(1).(int64), args.Error(2)
}

// --- Mock BalanceRepository ---

type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) FindLatestBalance(ctx context.Context, accountID, currencyCode string, asOf time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, currencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceRepository) ApplyDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

func (m *MockBalanceRepository) OverrideBalance(ctx context.Context, adjustment domain.BalanceAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockBalanceRepository) HasNonzeroBalance(ctx context.Context, accountID string, asOf time.Time) (bool, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Bool(0), args.Error(1)
}

func (m *MockBalanceRepository) ListAdjustmentsByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.BalanceAdjustment, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceAdjustment), args.Error(1)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByRange(ctx context.Context, start, end time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, status *domain.PeriodStatus, limit, offset int) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, period domain.AccountingPeriod, entries []domain.JournalEntry, deltas []domain.BalanceDelta, userID string) error {
	args := m.Called(ctx, period, entries, deltas, userID)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetIncomeStatementData(ctx context.Context, from, to time.Time) ([]portsrepo.AccountNetAmount, []portsrepo.AccountNetAmount, error) {
	args := m.Called(ctx, from, to)
	var revenue, expenses []portsrepo.AccountNetAmount
	if args.Get(0) != nil {
		revenue = args.Get(0).([]portsrepo.AccountNetAmount)
	}
	if args.Get(1) != nil {
		expenses = args.Get(1).([]portsrepo.AccountNetAmount)
	}
	return revenue, expenses, args.Error(2)
}

func (m *MockReportingRepository) GetBalanceSheetRows(ctx context.Context, asOf time.Time) ([]portsrepo.BalanceSheetRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.BalanceSheetRow), args.Error(1)
}

func (m *MockReportingRepository) GetRevenueExpenseBalances(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetCashFlowData(ctx context.Context, from, to time.Time, cashAccountCodes []string) ([]portsrepo.AccountNetAmount, []portsrepo.AccountNetAmount, error) {
	args := m.Called(ctx, from, to, cashAccountCodes)
	var inflows, outflows []portsrepo.AccountNetAmount
	if args.Get(0) != nil {
		inflows = args.Get(0).([]portsrepo.AccountNetAmount)
	}
	if args.Get(1) != nil {
		outflows = args.Get(1).([]portsrepo.AccountNetAmount)
	}
	return inflows, outflows, args.Error(2)
}

func (m *MockReportingRepository) GetCashBalanceBefore(ctx context.Context, before time.Time, cashAccountCodes []string) (decimal.Decimal, error) {
	args := m.Called(ctx, before, cashAccountCodes)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock LedgerSource ---

type MockLedgerSource struct {
	mock.Mock
	source domain.LedgerRowSource
}

var _ portsrepo.LedgerSource = (*MockLedgerSource)(nil)

func NewMockLedgerSource(source domain.LedgerRowSource) *MockLedgerSource {
	return &MockLedgerSource{source: source}
}

func (m *MockLedgerSource) Source() domain.LedgerRowSource {
	return m.source
}

func (m *MockLedgerSource) FetchRows(ctx context.Context, accountID string, q portsrepo.LedgerQuery) ([]domain.LedgerRow, error) {
	args := m.Called(ctx, accountID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRow), args.Error(1)
}
