package accounting_test

import (
	"testing"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(debit, credit float64) domain.JournalLine {
	return domain.JournalLine{
		Debit:  decimal.NewFromFloat(debit),
		Credit: decimal.NewFromFloat(credit),
	}
}

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		name        string
		debit       float64
		credit      float64
		accountType domain.AccountType
		want        string
	}{
		{"debit increases asset", 500, 0, domain.Asset, "500"},
		{"credit decreases asset", 0, 500, domain.Asset, "-500"},
		{"debit increases expense", 120, 0, domain.Expense, "120"},
		{"credit increases liability", 0, 300, domain.Liability, "300"},
		{"debit decreases liability", 300, 0, domain.Liability, "-300"},
		{"credit increases revenue", 0, 100, domain.Revenue, "100"},
		{"credit increases equity", 0, 50, domain.Equity, "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedDelta(decimal.NewFromFloat(tt.debit), decimal.NewFromFloat(tt.credit), tt.accountType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestSignedDeltaUnknownType(t *testing.T) {
	_, err := accounting.SignedDelta(decimal.NewFromInt(1), decimal.Zero, domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestValidateEntryBalance(t *testing.T) {
	t.Run("balanced entry passes", func(t *testing.T) {
		err := accounting.ValidateEntryBalance([]domain.JournalLine{line(100, 0), line(0, 100)})
		assert.NoError(t, err)
	})

	t.Run("unbalanced entry rejected", func(t *testing.T) {
		err := accounting.ValidateEntryBalance([]domain.JournalLine{line(100, 0), line(0, 90)})
		assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
	})

	t.Run("single line rejected even if amounts look fine", func(t *testing.T) {
		err := accounting.ValidateEntryBalance([]domain.JournalLine{line(50, 0)})
		assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
	})

	t.Run("within epsilon tolerated", func(t *testing.T) {
		err := accounting.ValidateEntryBalance([]domain.JournalLine{line(100.005, 0), line(0, 100)})
		assert.NoError(t, err)
	})

	t.Run("just over epsilon rejected", func(t *testing.T) {
		err := accounting.ValidateEntryBalance([]domain.JournalLine{line(100.02, 0), line(0, 100)})
		assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
	})

	t.Run("both sides set on one line rejected", func(t *testing.T) {
		err := accounting.ValidateEntryBalance([]domain.JournalLine{line(100, 100), line(0, 0)})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		err := accounting.ValidateEntryBalance([]domain.JournalLine{line(-100, 0), line(0, -100)})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("multi line entry balances across accounts", func(t *testing.T) {
		err := accounting.ValidateEntryBalance([]domain.JournalLine{
			line(60, 0), line(40, 0), line(0, 100),
		})
		assert.NoError(t, err)
	})
}

func TestPairedDeltasNetToZero(t *testing.T) {
	// Posting +500 then -500 to the same asset account leaves it unchanged.
	balance := decimal.NewFromInt(250)

	up, err := accounting.SignedDelta(decimal.NewFromInt(500), decimal.Zero, domain.Asset)
	require.NoError(t, err)
	down, err := accounting.SignedDelta(decimal.Zero, decimal.NewFromInt(500), domain.Asset)
	require.NoError(t, err)

	got := balance.Add(up).Add(down)
	assert.True(t, got.Equal(balance), "expected %s, got %s", balance, got)
}
