package dto

import (
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePeriodRequest is the payload for defining an accounting period.
type CreatePeriodRequest struct {
	Name       string `json:"name" binding:"required"`
	PeriodType string `json:"periodType" binding:"required,oneof=MONTHLY TERM ANNUAL"`
	StartDate  string `json:"startDate" binding:"required,isodate"` // YYYY-MM-DD
	EndDate    string `json:"endDate" binding:"required,isodate"`   // YYYY-MM-DD
}

// ListPeriodsParams filters the period listing.
type ListPeriodsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=OPEN CLOSED"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// PeriodResponse is the API representation of an accounting period.
type PeriodResponse struct {
	PeriodID   string `json:"periodID"`
	Name       string `json:"name"`
	PeriodType string `json:"periodType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status"`
}

// ClosePeriodResponse summarizes a completed period close.
type ClosePeriodResponse struct {
	PeriodID        string          `json:"periodID"`
	ClosingEntryIDs []string        `json:"closingEntryIDs"`
	NetIncome       decimal.Decimal `json:"netIncome"`
}

// ToPeriodResponse converts a domain period to its API representation.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:   p.PeriodID,
		Name:       p.Name,
		PeriodType: string(p.PeriodType),
		StartDate:  p.StartDate.Format("2006-01-02"),
		EndDate:    p.EndDate.Format("2006-01-02"),
		Status:     string(p.Status),
	}
}

// ToPeriodResponses converts a slice of domain periods.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	out := make([]PeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToPeriodResponse(&periods[i])
	}
	return out
}
