package services

import (
	"context"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations to handlers and to
// other services.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error
}
