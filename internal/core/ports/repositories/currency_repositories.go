package repositories

import (
	"context"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
)

// CurrencyRepositoryFacade defines persistence operations for the currency
// registry.
type CurrencyRepositoryFacade interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	FindBaseCurrency(ctx context.Context) (*domain.Currency, error)
}
