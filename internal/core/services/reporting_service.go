package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
	"github.com/schoolerp/ledger_backend/internal/utils/accounting"
	"github.com/schoolerp/ledger_backend/internal/utils/dates"
)

// SyntheticNetIncomeName labels the equity line injected into the balance
// sheet for revenue and expenses not yet closed into retained earnings. Once
// a period close zeroes those balances the line naturally reads zero and is
// omitted.
const SyntheticNetIncomeName = "Current Period Net Income"

var oneHundred = decimal.NewFromInt(100)

// reportingService derives financial reports from posted journal data. All
// reads, no writes.
type reportingService struct {
	BaseService
	reportingRepo    portsrepo.ReportingRepository
	ledgerSources    []portsrepo.LedgerSource
	accountSvc       portssvc.AccountSvcFacade
	cashAccountCodes []string
}

// NewReportingService creates a new reporting service. cashAccountCodes are
// the chart codes treated as cash/bank for the cash flow statement.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, ledgerSources []portsrepo.LedgerSource, accountSvc portssvc.AccountSvcFacade, cashAccountCodes []string) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo:    reportingRepo,
		ledgerSources:    ledgerSources,
		accountSvc:       accountSvc,
		cashAccountCodes: cashAccountCodes,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// toLineItems converts aggregation rows into report lines carrying each
// account's share of the section total.
func toLineItems(rows []portsrepo.AccountNetAmount, sectionTotal decimal.Decimal) []domain.ReportLineItem {
	items := make([]domain.ReportLineItem, len(rows))
	for i, row := range rows {
		pct := decimal.Zero
		if !sectionTotal.IsZero() {
			pct = row.Amount.Div(sectionTotal).Mul(oneHundred).Round(2)
		}
		items[i] = domain.ReportLineItem{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			Name:        row.Name,
			Amount:      row.Amount,
			Percentage:  pct,
		}
	}
	return items
}

func sumAmounts(rows []portsrepo.AccountNetAmount) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total
}

// GetIncomeStatement reports revenue minus expenses over the range. Opening
// and closing entries are excluded by the aggregation queries.
func (s *reportingService) GetIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report range end precedes start", apperrors.ErrValidation)
	}

	revenueRows, expenseRows, err := s.reportingRepo.GetIncomeStatementData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate income statement data")
		return nil, fmt.Errorf("failed to aggregate income statement: %w", err)
	}

	totalRevenue := sumAmounts(revenueRows)
	totalExpenses := sumAmounts(expenseRows)
	netIncome := totalRevenue.Sub(totalExpenses)

	margin := decimal.Zero
	if totalRevenue.IsPositive() {
		margin = netIncome.Div(totalRevenue).Mul(oneHundred).Round(2)
	}

	return &domain.IncomeStatement{
		FromDate:          from,
		ToDate:            to,
		Revenue:           toLineItems(revenueRows, totalRevenue),
		Expenses:          toLineItems(expenseRows, totalExpenses),
		TotalRevenue:      totalRevenue,
		TotalExpenses:     totalExpenses,
		NetIncome:         netIncome,
		GrossProfitMargin: margin,
	}, nil
}

// GetBalanceSheet reports asset, liability and equity balances as of the date,
// grouped into presentation buckets. Equity receives a synthetic net income
// line for any un-closed revenue/expense balance so the accounting equation
// holds mid-period.
func (s *reportingService) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	rows, err := s.reportingRepo.GetBalanceSheetRows(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to read balance sheet rows")
		return nil, fmt.Errorf("failed to read balance sheet rows: %w", err)
	}

	sheet := domain.BalanceSheet{AsOf: asOf}
	for _, row := range rows {
		item := domain.ReportLineItem{
			AccountID:   row.Account.AccountID,
			AccountCode: row.Account.Code,
			Name:        row.Account.Name,
			Amount:      row.Balance,
		}
		switch accounting.Classify(row.Account) {
		case domain.CurrentAsset:
			sheet.CurrentAssets = append(sheet.CurrentAssets, item)
		case domain.FixedAsset:
			sheet.FixedAssets = append(sheet.FixedAssets, item)
		case domain.OtherAsset:
			sheet.OtherAssets = append(sheet.OtherAssets, item)
		case domain.CurrentLiability:
			sheet.CurrentLiabilities = append(sheet.CurrentLiabilities, item)
		case domain.LongTermLiability:
			sheet.LongTermLiabilities = append(sheet.LongTermLiabilities, item)
		case domain.EquityBucket:
			sheet.Equity = append(sheet.Equity, item)
		}
	}

	netIncome, err := s.reportingRepo.GetRevenueExpenseBalances(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute current period net income")
		return nil, fmt.Errorf("failed to compute current period net income: %w", err)
	}
	if !netIncome.IsZero() {
		sheet.Equity = append(sheet.Equity, domain.ReportLineItem{
			Name:   SyntheticNetIncomeName,
			Amount: netIncome,
		})
	}

	sumItems := func(items []domain.ReportLineItem) decimal.Decimal {
		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.Amount)
		}
		return total
	}
	sheet.TotalAssets = sumItems(sheet.CurrentAssets).Add(sumItems(sheet.FixedAssets)).Add(sumItems(sheet.OtherAssets))
	sheet.TotalLiabilities = sumItems(sheet.CurrentLiabilities).Add(sumItems(sheet.LongTermLiabilities))
	sheet.TotalEquity = sumItems(sheet.Equity)
	sheet.Balanced = accounting.WithinEpsilon(sheet.TotalAssets, sheet.TotalLiabilities.Add(sheet.TotalEquity))

	if !sheet.Balanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance",
			slog.String("total_assets", sheet.TotalAssets.String()),
			slog.String("total_liabilities", sheet.TotalLiabilities.String()),
			slog.String("total_equity", sheet.TotalEquity.String()),
			slog.String("as_of", asOf.Format("2006-01-02")))
	}
	return &sheet, nil
}

// GetCashFlowStatement reclassifies cash/bank postings by their contra
// accounts over the range.
func (s *reportingService) GetCashFlowStatement(ctx context.Context, from, to time.Time) (*domain.CashFlowStatement, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report range end precedes start", apperrors.ErrValidation)
	}

	inflowRows, outflowRows, err := s.reportingRepo.GetCashFlowData(ctx, from, to, s.cashAccountCodes)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate cash flow data")
		return nil, fmt.Errorf("failed to aggregate cash flow: %w", err)
	}

	beginning, err := s.reportingRepo.GetCashBalanceBefore(ctx, from, s.cashAccountCodes)
	if err != nil {
		s.LogError(ctx, err, "Failed to read beginning cash balance")
		return nil, fmt.Errorf("failed to read beginning cash balance: %w", err)
	}

	totalInflows := sumAmounts(inflowRows)
	totalOutflows := sumAmounts(outflowRows)
	net := totalInflows.Sub(totalOutflows)

	return &domain.CashFlowStatement{
		FromDate:      from,
		ToDate:        to,
		Inflows:       toLineItems(inflowRows, totalInflows),
		Outflows:      toLineItems(outflowRows, totalOutflows),
		TotalInflows:  totalInflows,
		TotalOutflows: totalOutflows,
		NetCashFlow:   net,
		BeginningCash: beginning,
		EndingCash:    beginning.Add(net),
	}, nil
}

// GetTrialBalance lists every account's total debits and credits as of the
// date. A sound ledger produces equal column totals.
func (s *reportingService) GetTrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate trial balance")
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}
	return rows, nil
}

// GetGeneralLedger merges rows from every registered ledger source into one
// date-descending view and paginates in memory.
func (s *reportingService) GetGeneralLedger(ctx context.Context, accountID string, params dto.GeneralLedgerParams) (*dto.GeneralLedgerResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	q := portsrepo.LedgerQuery{Search: params.Search}
	if params.FromDate != "" {
		from, err := dates.ParseISO(params.FromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, params.FromDate)
		}
		q.FromDate = &from
	}
	if params.ToDate != "" {
		to, err := dates.ParseISO(params.ToDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, params.ToDate)
		}
		q.ToDate = &to
	}

	var rows []domain.LedgerRow
	for _, source := range s.ledgerSources {
		sourceRows, err := source.FetchRows(ctx, accountID, q)
		if err != nil {
			s.LogError(ctx, err, "Ledger source fetch failed", slog.String("source", string(source.Source())))
			return nil, fmt.Errorf("ledger source %s: %w", source.Source(), err)
		}
		rows = append(rows, sourceRows...)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TransactionDate.After(rows[j].TransactionDate)
	})

	page := params.Page
	if page <= 0 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	total := len(rows)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	resp := dto.GeneralLedgerResponse{
		AccountID: accountID,
		Rows:      dto.ToLedgerRowResponses(rows[start:end]),
		Page:      page,
		Limit:     limit,
		Total:     total,
	}
	return &resp, nil
}
