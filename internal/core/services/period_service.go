package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
	"github.com/schoolerp/ledger_backend/internal/utils/accounting"
	"github.com/schoolerp/ledger_backend/internal/utils/dates"
)

// ClosingAccountCodes names the chart codes the close posts against.
type ClosingAccountCodes struct {
	IncomeSummary    string // e.g. "3999"
	RetainedEarnings string // e.g. "3998"
}

// periodService manages accounting periods and runs the period close. The
// close rewrites no history: it posts offsetting CLOSING_ENTRY journal entries
// and flips the period status, all in one transaction.
type periodService struct {
	BaseService
	periodRepo    portsrepo.PeriodRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
	journalSvc    portssvc.JournalSvcFacade
	accountSvc    portssvc.AccountSvcFacade
	currencySvc   portssvc.CurrencySvcFacade
	closingCodes  ClosingAccountCodes
}

// NewPeriodService creates a new period service.
func NewPeriodService(
	periodRepo portsrepo.PeriodRepositoryFacade,
	reportingRepo portsrepo.ReportingRepository,
	journalSvc portssvc.JournalSvcFacade,
	accountSvc portssvc.AccountSvcFacade,
	currencySvc portssvc.CurrencySvcFacade,
	closingCodes ClosingAccountCodes,
) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:    periodRepo,
		reportingRepo: reportingRepo,
		journalSvc:    journalSvc,
		accountSvc:    accountSvc,
		currencySvc:   currencySvc,
		closingCodes:  closingCodes,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod defines a new accounting period. Duplicate date ranges are
// rejected.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error) {
	logger := s.GetLogger(ctx)

	start, err := dates.ParseISO(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, req.StartDate)
	}
	end, err := dates.ParseISO(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, req.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period end precedes start", apperrors.ErrValidation)
	}

	existing, err := s.periodRepo.FindPeriodByRange(ctx, start, end)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing period: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: period %s already covers this range", apperrors.ErrDuplicate, existing.Name)
	}

	now := time.Now().UTC()
	period := domain.AccountingPeriod{
		PeriodID:   uuid.NewString(),
		Name:       req.Name,
		PeriodType: domain.PeriodType(req.PeriodType),
		StartDate:  start,
		EndDate:    end,
		Status:     domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save period: %w", err)
	}

	logger.Info("Accounting period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

// GetPeriodByID fetches a single period.
func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period", slog.String("period_id", periodID))
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	return period, nil
}

// ListPeriods lists periods, optionally filtered by status.
func (s *periodService) ListPeriods(ctx context.Context, params dto.ListPeriodsParams) ([]domain.AccountingPeriod, error) {
	var status *domain.PeriodStatus
	if params.Status != "" {
		st := domain.PeriodStatus(params.Status)
		status = &st
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	periods, err := s.periodRepo.ListPeriods(ctx, status, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods")
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// ClosePeriod zeroes every revenue and expense account into the income summary
// account, transfers the result to retained earnings and marks the period
// CLOSED. The closing entries, the balance updates and the status change
// commit atomically; a failed close leaves the period untouched.
//
// Before posting anything the close cross-checks the journal-derived period
// flows against the balance snapshots. Disagreement beyond the rounding
// epsilon means the two bookkeeping representations have drifted apart, and
// the close aborts with a data integrity error rather than baking the drift
// into retained earnings.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, requestingUserID string) (*dto.ClosePeriodResponse, error) {
	logger := s.GetLogger(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.Status == domain.PeriodClosed {
		return nil, fmt.Errorf("%w: period %s is already closed", apperrors.ErrConflict, period.Name)
	}

	incomeSummary, err := s.accountSvc.GetAccountByCode(ctx, s.closingCodes.IncomeSummary)
	if err != nil {
		return nil, fmt.Errorf("income summary account %s: %w", s.closingCodes.IncomeSummary, err)
	}
	retainedEarnings, err := s.accountSvc.GetAccountByCode(ctx, s.closingCodes.RetainedEarnings)
	if err != nil {
		return nil, fmt.Errorf("retained earnings account %s: %w", s.closingCodes.RetainedEarnings, err)
	}

	baseCurrency, err := s.currencySvc.GetBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency: %w", err)
	}

	revenueRows, expenseRows, err := s.reportingRepo.GetIncomeStatementData(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period flows: %w", err)
	}

	totalRevenue := sumAmounts(revenueRows)
	totalExpenses := sumAmounts(expenseRows)
	netIncome := totalRevenue.Sub(totalExpenses)

	snapshotNet, err := s.reportingRepo.GetRevenueExpenseBalances(ctx, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read revenue/expense balances: %w", err)
	}
	if !accounting.WithinEpsilon(netIncome, snapshotNet) {
		logger.Error("Journal flows and balance snapshots disagree, aborting close",
			slog.String("period_id", periodID),
			slog.String("journal_net", netIncome.String()),
			slog.String("snapshot_net", snapshotNet.String()))
		return nil, fmt.Errorf("%w: journal-derived net income %s does not match snapshot net %s",
			apperrors.ErrDataIntegrity, netIncome.String(), snapshotNet.String())
	}

	endDate := period.EndDate.Format("2006-01-02")
	var (
		entries []domain.JournalEntry
		deltas  []domain.BalanceDelta
		ids     []string
	)

	build := func(req dto.PostEntryRequest) error {
		entry, lines, entryDeltas, err := s.journalSvc.BuildEntry(ctx, req, domain.KindClosingEntry, requestingUserID)
		if err != nil {
			return err
		}
		entry.Lines = lines
		entries = append(entries, *entry)
		deltas = append(deltas, entryDeltas...)
		ids = append(ids, entry.EntryID)
		return nil
	}

	// Revenue accounts normally carry credit balances; debit each to zero and
	// credit the total into the income summary.
	if revenueLines := closingLines(revenueRows, true, incomeSummary.AccountID, baseCurrency.CurrencyCode); len(revenueLines) > 0 {
		req := dto.PostEntryRequest{
			EntryDate:   endDate,
			Description: fmt.Sprintf(domain.DescCloseToIncomeSummary, "Revenue"),
			Lines:       revenueLines,
		}
		if err := build(req); err != nil {
			return nil, fmt.Errorf("failed to build revenue closing entry: %w", err)
		}
	}

	// Expense accounts carry debit balances; credit each to zero and debit the
	// total from the income summary.
	if expenseLines := closingLines(expenseRows, false, incomeSummary.AccountID, baseCurrency.CurrencyCode); len(expenseLines) > 0 {
		req := dto.PostEntryRequest{
			EntryDate:   endDate,
			Description: fmt.Sprintf(domain.DescCloseToIncomeSummary, "Expenses"),
			Lines:       expenseLines,
		}
		if err := build(req); err != nil {
			return nil, fmt.Errorf("failed to build expense closing entry: %w", err)
		}
	}

	// Transfer the income summary balance to retained earnings. A profit
	// debits the summary and credits retained earnings; a loss reverses.
	if !netIncome.IsZero() {
		var lines []dto.PostEntryLineRequest
		if netIncome.IsPositive() {
			lines = []dto.PostEntryLineRequest{
				{AccountID: incomeSummary.AccountID, CurrencyCode: baseCurrency.CurrencyCode, Debit: netIncome},
				{AccountID: retainedEarnings.AccountID, CurrencyCode: baseCurrency.CurrencyCode, Credit: netIncome},
			}
		} else {
			loss := netIncome.Neg()
			lines = []dto.PostEntryLineRequest{
				{AccountID: retainedEarnings.AccountID, CurrencyCode: baseCurrency.CurrencyCode, Debit: loss},
				{AccountID: incomeSummary.AccountID, CurrencyCode: baseCurrency.CurrencyCode, Credit: loss},
			}
		}
		req := dto.PostEntryRequest{
			EntryDate:   endDate,
			Description: domain.DescCloseIncomeSummary,
			Lines:       lines,
		}
		if err := build(req); err != nil {
			return nil, fmt.Errorf("failed to build income summary closing entry: %w", err)
		}
	}

	now := time.Now().UTC()
	closed := *period
	closed.Status = domain.PeriodClosed
	closed.LastUpdatedAt = now
	closed.LastUpdatedBy = requestingUserID

	if err := s.periodRepo.ClosePeriod(ctx, closed, entries, deltas, requestingUserID); err != nil {
		logger.Error("Failed to commit period close", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to close period %s: %w", periodID, err)
	}

	logger.Info("Period closed",
		slog.String("period_id", periodID),
		slog.String("name", period.Name),
		slog.Int("closing_entries", len(entries)),
		slog.String("net_income", netIncome.String()))

	return &dto.ClosePeriodResponse{
		PeriodID:        periodID,
		ClosingEntryIDs: ids,
		NetIncome:       netIncome,
	}, nil
}

// closingLines builds the offsetting lines that zero one side of the income
// statement into the summary account. Zero-balance accounts are skipped;
// negative period totals (e.g. refunds exceeding fees) flip to the other side
// so every line stays positive.
func closingLines(rows []portsrepo.AccountNetAmount, isRevenue bool, summaryAccountID, currencyCode string) []dto.PostEntryLineRequest {
	var lines []dto.PostEntryLineRequest
	total := decimal.Zero
	for _, row := range rows {
		if row.Amount.IsZero() {
			continue
		}
		line := dto.PostEntryLineRequest{AccountID: row.AccountID, CurrencyCode: currencyCode}
		amount := row.Amount.Abs()
		closeOnDebit := isRevenue == row.Amount.IsPositive()
		if closeOnDebit {
			line.Debit = amount
		} else {
			line.Credit = amount
		}
		lines = append(lines, line)
		total = total.Add(row.Amount)
	}
	if len(lines) == 0 {
		return nil
	}
	if total.IsZero() {
		// The accounts offset each other exactly; no summary line needed.
		return lines
	}

	summary := dto.PostEntryLineRequest{AccountID: summaryAccountID, CurrencyCode: currencyCode}
	if isRevenue == total.IsPositive() {
		summary.Credit = total.Abs()
	} else {
		summary.Debit = total.Abs()
	}
	return append(lines, summary)
}
