package services

import (
	"context"
	"time"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/dto"
)

// BalanceSvcFacade exposes balance snapshot reads and the administrative
// override path.
type BalanceSvcFacade interface {
	GetBalance(ctx context.Context, accountID string, currencyCode string, asOf time.Time) (*domain.AccountBalance, error)
	SetBalance(ctx context.Context, accountID string, req dto.SetBalanceRequest, requestingUserID string) (*domain.AccountBalance, error)
}
