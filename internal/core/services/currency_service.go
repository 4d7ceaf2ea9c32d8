package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/schoolerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

// currencyService manages the currency registry.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a new currency. Only one base currency may exist.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := s.GetLogger(ctx)
	code := strings.ToUpper(req.CurrencyCode)

	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: currency %s already exists", apperrors.ErrDuplicate, code)
	}

	if req.IsBase {
		base, err := s.currencyRepo.FindBaseCurrency(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check base currency: %w", err)
		}
		if base != nil {
			return nil, fmt.Errorf("%w: %s is already the base currency", apperrors.ErrConflict, base.CurrencyCode)
		}
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: code,
		Name:         req.Name,
		Symbol:       req.Symbol,
		IsActive:     true,
		IsBase:       req.IsBase,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		logger.Error("Failed to save currency", slog.String("error", err.Error()), slog.String("code", code))
		return nil, fmt.Errorf("failed to save currency %s: %w", code, err)
	}

	logger.Info("Currency created", slog.String("code", code), slog.Bool("is_base", currency.IsBase))
	return &currency, nil
}

// GetCurrencyByCode fetches a single currency.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find currency", slog.String("code", currencyCode))
		}
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

// GetBaseCurrency returns the currency flagged as the reporting base.
func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find base currency")
		}
		return nil, fmt.Errorf("failed to find base currency: %w", err)
	}
	return currency, nil
}

// ListCurrencies lists all registered currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}
