package services

import (
	"context"
	"time"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

// ReportingSvcFacade derives financial reports from posted journal data.
type ReportingSvcFacade interface {
	GetIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error)
	GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)
	GetCashFlowStatement(ctx context.Context, from, to time.Time) (*domain.CashFlowStatement, error)
	GetTrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
	GetGeneralLedger(ctx context.Context, accountID string, params dto.GeneralLedgerParams) (*dto.GeneralLedgerResponse, error)
}
