package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
)

// ListAccountsFilter narrows ListAccounts results. Nil fields mean "any".
type ListAccountsFilter struct {
	AccountType *domain.AccountType
	IsActive    *bool
}

// AccountRepositoryFacade defines persistence operations for the chart of
// accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, filter ListAccountsFilter) ([]domain.Account, error)
	SetAccountActive(ctx context.Context, accountID string, isActive bool, updatedBy string) error

	// FindAccountsByIDsForUpdate locks account rows inside an open transaction,
	// serializing concurrent postings that touch the same accounts.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
}
