package dto

import "github.com/schoolerp/ledger_backend/internal/core/domain"

// CreateCurrencyRequest is the payload for registering a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Name         string `json:"name" binding:"required"`
	Symbol       string `json:"symbol"`
	IsBase       bool   `json:"isBase"`
}

// CurrencyResponse is the API representation of a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	IsActive     bool   `json:"isActive"`
	IsBase       bool   `json:"isBase"`
}

// ToCurrencyResponse converts a domain currency to its API representation.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Name:         c.Name,
		Symbol:       c.Symbol,
		IsActive:     c.IsActive,
		IsBase:       c.IsBase,
	}
}

// ToCurrencyResponses converts a slice of domain currencies.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	out := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		out[i] = ToCurrencyResponse(&currencies[i])
	}
	return out
}
