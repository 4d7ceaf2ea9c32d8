package services

import (
	"context"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

// PeriodSvcFacade manages accounting periods and runs the period close.
type PeriodSvcFacade interface {
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error)
	GetPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, params dto.ListPeriodsParams) ([]domain.AccountingPeriod, error)

	// ClosePeriod zeroes revenue and expense accounts into the income summary,
	// transfers the result to retained earnings and marks the period CLOSED.
	// The whole operation commits atomically.
	ClosePeriod(ctx context.Context, periodID string, requestingUserID string) (*dto.ClosePeriodResponse, error)
}
