package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/core/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

func TestCreateCurrency_Success(t *testing.T) {
	mockRepo := new(MockCurrencyRepository)
	svc := services.NewCurrencyService(mockRepo)
	ctx := context.Background()

	mockRepo.On("FindCurrencyByCode", ctx, "KES").Return(nil, apperrors.ErrNotFound)
	mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "KES" && c.IsActive && !c.IsBase
	})).Return(nil)

	currency, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		CurrencyCode: "kes",
		Name:         "Kenyan Shilling",
		Symbol:       "KSh",
	}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "KES", currency.CurrencyCode)
	mockRepo.AssertExpectations(t)
}

func TestCreateCurrency_SecondBaseRejected(t *testing.T) {
	mockRepo := new(MockCurrencyRepository)
	svc := services.NewCurrencyService(mockRepo)
	ctx := context.Background()

	mockRepo.On("FindCurrencyByCode", ctx, "EUR").Return(nil, apperrors.ErrNotFound)
	mockRepo.On("FindBaseCurrency", ctx).Return(&domain.Currency{CurrencyCode: "USD", IsBase: true}, nil)

	_, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		CurrencyCode: "EUR",
		Name:         "Euro",
		IsBase:       true,
	}, "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertNotCalled(t, "SaveCurrency", mock.Anything, mock.Anything)
}

func TestCreateCurrency_Duplicate(t *testing.T) {
	mockRepo := new(MockCurrencyRepository)
	svc := services.NewCurrencyService(mockRepo)
	ctx := context.Background()

	mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)

	_, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		CurrencyCode: "USD",
		Name:         "US Dollar",
	}, "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestGetCurrencyByCode_Lowercased(t *testing.T) {
	mockRepo := new(MockCurrencyRepository)
	svc := services.NewCurrencyService(mockRepo)
	ctx := context.Background()

	mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)

	currency, err := svc.GetCurrencyByCode(ctx, "usd")

	require.NoError(t, err)
	assert.Equal(t, "USD", currency.CurrencyCode)
}
