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
	"github.com/schoolerp/ledger_backend/internal/utils/dates"
)

// balanceService reads versioned balance snapshots and handles the
// administrative override path. Snapshots themselves are maintained by the
// posting transaction; this service never derives balances on its own.
type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade, accountSvc portssvc.AccountSvcFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		balanceRepo: balanceRepo,
		accountSvc:  accountSvc,
		currencySvc: currencySvc,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalance returns the snapshot effective at asOf: the latest row with
// as_of_date <= asOf. An account with no snapshot yet reads as zero.
func (s *balanceService) GetBalance(ctx context.Context, accountID string, currencyCode string, asOf time.Time) (*domain.AccountBalance, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	if currencyCode == "" {
		base, err := s.currencySvc.GetBaseCurrency(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base currency: %w", err)
		}
		currencyCode = base.CurrencyCode
	}

	balance, err := s.balanceRepo.FindLatestBalance(ctx, accountID, currencyCode, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to read balance snapshot", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to read balance for account %s: %w", accountID, err)
	}
	if balance == nil {
		return &domain.AccountBalance{
			AccountID:    accountID,
			CurrencyCode: currencyCode,
			Balance:      decimal.Zero,
			AsOfDate:     asOf,
		}, nil
	}
	return balance, nil
}

// SetBalance overwrites an account's snapshot directly, bypassing the journal.
// The override always records a BalanceAdjustment audit row so it surfaces in
// the general ledger view.
func (s *balanceService) SetBalance(ctx context.Context, accountID string, req dto.SetBalanceRequest, requestingUserID string) (*domain.AccountBalance, error) {
	logger := s.GetLogger(ctx)

	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %s not found", apperrors.ErrReferenceIntegrity, req.CurrencyCode)
		}
		return nil, err
	}

	asOf, err := dates.ParseISO(req.AsOfDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid as-of date %q", apperrors.ErrValidation, req.AsOfDate)
	}

	previous, err := s.balanceRepo.FindLatestBalance(ctx, accountID, req.CurrencyCode, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to read current balance for account %s: %w", accountID, err)
	}
	previousBalance := decimal.Zero
	if previous != nil {
		previousBalance = previous.Balance
	}

	now := time.Now().UTC()
	adjustment := domain.BalanceAdjustment{
		AdjustmentID:    uuid.NewString(),
		AccountID:       accountID,
		CurrencyCode:    req.CurrencyCode,
		PreviousBalance: previousBalance,
		NewBalance:      req.Balance,
		AsOfDate:        asOf,
		Reason:          req.Reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.balanceRepo.OverrideBalance(ctx, adjustment); err != nil {
		logger.Error("Failed to override balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to override balance for account %s: %w", accountID, err)
	}

	logger.Warn("Balance overridden outside the journal",
		slog.String("account_id", accountID),
		slog.String("previous", previousBalance.String()),
		slog.String("new", req.Balance.String()),
		slog.String("by", requestingUserID))

	return &domain.AccountBalance{
		AccountID:    accountID,
		CurrencyCode: req.CurrencyCode,
		Balance:      req.Balance,
		AsOfDate:     asOf,
	}, nil
}
