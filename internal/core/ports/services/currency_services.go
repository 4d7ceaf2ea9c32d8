package services

import (
	"context"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

// CurrencySvcFacade exposes currency registry operations.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
