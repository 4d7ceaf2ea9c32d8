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

const defaultListLimit = 20

// journalService is the single write path into the ledger. Every posting
// module goes through PostEntry, which enforces the double-entry invariants
// before anything is persisted.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		currencySvc: currencySvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// BuildEntry validates the request and assembles the entry, its lines and the
// signed balance deltas without persisting anything. PostEntry and the period
// close both build entries here so validation never diverges.
func (s *journalService) BuildEntry(ctx context.Context, req dto.PostEntryRequest, kind domain.EntryKind, creatorUserID string) (*domain.JournalEntry, []domain.JournalLine, []domain.BalanceDelta, error) {
	entryDate, err := dates.ParseISO(req.EntryDate)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, req.EntryDate)
	}
	if req.Description == "" {
		return nil, nil, nil, fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	}
	if kind == domain.KindNormal && domain.IsSelfEntryDescription(req.Description) {
		return nil, nil, nil, fmt.Errorf("%w: description %q is reserved for opening/closing entries", apperrors.ErrValidation, req.Description)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	currencyCodes := make(map[string]struct{})
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lineReq.AccountID,
			CurrencyCode: lineReq.CurrencyCode,
			Debit:        lineReq.Debit,
			Credit:       lineReq.Credit,
			Description:  lineReq.Description,
			ExchangeRate: lineReq.ExchangeRate,
			AuditFields:  audit,
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
		currencyCodes[lineReq.CurrencyCode] = struct{}{}
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, nil, nil, err
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueStrings(accountIDs) {
		acc, found := accountsMap[id]
		if !found {
			return nil, nil, nil, fmt.Errorf("%w: account %s not found", apperrors.ErrReferenceIntegrity, id)
		}
		if !acc.IsActive {
			return nil, nil, nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrReferenceIntegrity, id)
		}
	}
	for code := range currencyCodes {
		currency, err := s.currencySvc.GetCurrencyByCode(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, nil, fmt.Errorf("%w: currency %s not found", apperrors.ErrReferenceIntegrity, code)
			}
			return nil, nil, nil, fmt.Errorf("failed to fetch currency %s: %w", code, err)
		}
		if !currency.IsActive {
			return nil, nil, nil, fmt.Errorf("%w: currency %s is inactive", apperrors.ErrReferenceIntegrity, code)
		}
	}

	deltas, err := buildBalanceDeltas(lines, accountsMap, entryDate)
	if err != nil {
		return nil, nil, nil, err
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   entryDate,
		Reference:   req.Reference,
		Description: req.Description,
		Kind:        kind,
		AuditFields: audit,
	}
	return &entry, lines, deltas, nil
}

// buildBalanceDeltas nets each line's signed effect per account+currency.
func buildBalanceDeltas(lines []domain.JournalLine, accounts map[string]domain.Account, effectiveDate time.Time) ([]domain.BalanceDelta, error) {
	type key struct{ accountID, currency string }
	net := make(map[key]decimal.Decimal)
	order := make([]key, 0, len(lines))
	for _, line := range lines {
		acc := accounts[line.AccountID]
		signed, err := accounting.SignedDelta(line.Debit, line.Credit, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err.Error())
		}
		k := key{line.AccountID, line.CurrencyCode}
		if _, seen := net[k]; !seen {
			order = append(order, k)
		}
		net[k] = net[k].Add(signed)
	}

	deltas := make([]domain.BalanceDelta, 0, len(order))
	for _, k := range order {
		deltas = append(deltas, domain.BalanceDelta{
			AccountID:     k.accountID,
			CurrencyCode:  k.currency,
			Delta:         net[k],
			EffectiveDate: effectiveDate,
		})
	}
	return deltas, nil
}

// PostEntry validates and persists a normal journal entry atomically with its
// balance snapshot updates.
func (s *journalService) PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	entry, lines, deltas, err := s.BuildEntry(ctx, req, domain.KindNormal, creatorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, *entry, lines, deltas); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.Int("lines", len(lines)),
		slog.String("entry_date", entry.EntryDate.Format("2006-01-02")))

	entry.Lines = lines
	return entry, nil
}

// GetEntryByID fetches an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load lines for journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries pages through entries newest-first with an opaque cursor.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}
	return &resp, nil
}

// ListAccountLines returns one page of an account's ledger lines joined with
// entry metadata.
func (s *journalService) ListAccountLines(ctx context.Context, accountID string, params dto.ListAccountLinesParams) (*dto.AccountLedgerResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	q := portsrepo.ListAccountLinesQuery{
		Search: params.Search,
		Side:   params.Side,
		Page:   params.Page,
		Limit:  params.Limit,
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultListLimit
	}
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

	lines, total, err := s.journalRepo.ListLinesByAccount(ctx, accountID, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list lines for account %s: %w", accountID, err)
	}

	resp := dto.AccountLedgerResponse{
		AccountID: accountID,
		Lines:     dto.ToJournalLineResponses(lines),
		Page:      q.Page,
		Limit:     q.Limit,
		Total:     total,
	}
	return &resp, nil
}

// uniqueStrings deduplicates while preserving first-seen order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
