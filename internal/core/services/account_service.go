package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, balanceRepo: balanceRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account after checking code uniqueness.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := s.GetLogger(ctx)

	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check account code uniqueness", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already in use", apperrors.ErrDuplicate, req.Code)
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account %s has type %s, child must match", apperrors.ErrValidation, parent.Code, parent.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID fetches a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode fetches a single account by its chart code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByIDs fetches a batch of accounts keyed by ID. Missing IDs are
// simply absent from the result map.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs")
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts lists accounts matching the optional type/active filters.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := portsrepo.ListAccountsFilter{IsActive: params.IsActive}
	if params.AccountType != "" {
		t := domain.AccountType(params.AccountType)
		filter.AccountType = &t
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount soft deletes an account. The account stays referenceable
// from history but rejects new postings.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	logger := s.GetLogger(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, accountID)
	}

	// An inactive account rejects new postings, so a leftover balance could
	// never be cleared. Require the account to be settled first.
	nonzero, err := s.balanceRepo.HasNonzeroBalance(ctx, accountID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to check balances before deactivation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to check balances for account %s: %w", accountID, err)
	}
	if nonzero {
		return fmt.Errorf("%w: account %s still carries a nonzero balance", apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.SetAccountActive(ctx, accountID, false, requestingUserID); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID), slog.String("by", requestingUserID))
	return nil
}
