package accounting

import (
	"fmt"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerance applied when comparing debit and credit
// totals, to absorb rounding on amounts supplied by callers.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// SignedDelta converts a line's debit/credit pair into a signed balance delta
// for the given account type.
// DEBIT to ASSET/EXPENSE -> positive; CREDIT -> negative.
// CREDIT to LIABILITY/EQUITY/REVENUE -> positive; DEBIT -> negative.
func SignedDelta(debit, credit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// ValidateEntryBalance checks the double-entry invariant for a set of lines:
// at least two lines, every line with exactly one positive side, and total
// debits equal to total credits within BalanceEpsilon.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines, got %d", apperrors.ErrUnbalanced, len(lines))
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i)
		}
		if line.Debit.IsPositive() == line.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d must have exactly one of debit/credit set", apperrors.ErrValidation, i)
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if debits.Sub(credits).Abs().GreaterThan(BalanceEpsilon) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s", apperrors.ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// WithinEpsilon reports whether two decimals agree within BalanceEpsilon.
func WithinEpsilon(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceEpsilon)
}
