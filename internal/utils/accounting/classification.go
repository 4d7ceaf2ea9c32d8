package accounting

import (
	"strconv"
	"strings"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
)

// codeRange maps a numeric account code range to a balance sheet bucket.
// Primary classification rule; checked before keywords.
type codeRange struct {
	low, high int
	bucket    domain.BalanceSheetBucket
}

var codeRanges = []codeRange{
	{1000, 1499, domain.CurrentAsset},
	{1500, 1999, domain.FixedAsset},
	{2000, 2499, domain.CurrentLiability},
	{2500, 2999, domain.LongTermLiability},
}

// keywordRule is the fallback for accounts whose codes sit outside the
// conventional ranges. Rules are evaluated in order; the first match wins.
type keywordRule struct {
	keyword string
	bucket  domain.BalanceSheetBucket
}

var keywordRules = []keywordRule{
	{"cash", domain.CurrentAsset},
	{"bank", domain.CurrentAsset},
	{"receivable", domain.CurrentAsset},
	{"inventory", domain.CurrentAsset},
	{"property", domain.FixedAsset},
	{"equipment", domain.FixedAsset},
	{"building", domain.FixedAsset},
	{"vehicle", domain.FixedAsset},
	{"payable", domain.CurrentLiability},
	{"current", domain.CurrentLiability},
	{"short", domain.CurrentLiability},
	{"long", domain.LongTermLiability},
	{"term", domain.LongTermLiability},
	{"loan", domain.LongTermLiability},
}

// Classify places an account into its balance sheet bucket. Equity accounts
// always map to the equity bucket. For assets and liabilities the code range
// is authoritative; the keyword fallback exists because the code convention is
// not enforced at account creation. Accounts matching neither rule default to
// Other Asset (assets) or Current Liability (liabilities).
func Classify(account domain.Account) domain.BalanceSheetBucket {
	if account.AccountType == domain.Equity {
		return domain.EquityBucket
	}

	if code, err := strconv.Atoi(strings.TrimSpace(account.Code)); err == nil {
		for _, r := range codeRanges {
			if code >= r.low && code <= r.high {
				return r.bucket
			}
		}
	}

	name := strings.ToLower(account.Name)
	for _, rule := range keywordRules {
		if strings.Contains(name, rule.keyword) {
			// Keyword buckets must stay on the account's own side of the
			// balance sheet.
			if account.AccountType == domain.Liability {
				if rule.bucket == domain.CurrentLiability || rule.bucket == domain.LongTermLiability {
					return rule.bucket
				}
				continue
			}
			if rule.bucket == domain.CurrentAsset || rule.bucket == domain.FixedAsset {
				return rule.bucket
			}
		}
	}

	if account.AccountType == domain.Liability {
		return domain.CurrentLiability
	}
	return domain.OtherAsset
}
