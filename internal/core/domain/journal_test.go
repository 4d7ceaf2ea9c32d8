package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolerp/ledger_backend/internal/core/domain"
)

func TestIsSelfEntryDescription(t *testing.T) {
	tests := []struct {
		desc string
		want bool
	}{
		{domain.DescOpeningBalancesBD, true},
		{"Opening Balance: Cash", true},
		{domain.DescCloseIncomeSummary, true},
		{fmt.Sprintf(domain.DescCloseToIncomeSummary, "Tuition Revenue"), true},
		// ordinary postings that merely mention the closing accounts
		{"transfer to Income Summary", false},
		{"Reclose audit adjustment", false},
		{"Payment for Opening ceremony Balance due", false},
		{"Tuition receipt RCPT-0042", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.IsSelfEntryDescription(tt.desc), tt.desc)
	}
}
