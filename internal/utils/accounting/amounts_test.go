package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/accounting"
)

func entry(accountID string, debit, credit string) domain.Entry {
	return domain.Entry{
		AccountID:    accountID,
		DebitAmount:  decimal.RequireFromString(debit),
		CreditAmount: decimal.RequireFromString(credit),
	}
}

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.Entry
		want    bool
	}{
		{
			name: "exactly balanced",
			entries: []domain.Entry{
				entry("a", "100", "0"),
				entry("b", "0", "100"),
			},
			want: true,
		},
		{
			name: "within tolerance",
			entries: []domain.Entry{
				entry("a", "100.00", "0"),
				entry("b", "0", "99.995"),
			},
			want: true,
		},
		{
			name: "just past tolerance",
			entries: []domain.Entry{
				entry("a", "100.00", "0"),
				entry("b", "0", "99.98"),
			},
			want: false,
		},
		{
			name:    "empty set balances trivially",
			entries: nil,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.IsBalanced(tt.entries))
		})
	}
}

func TestBalanceChanges_FoldsPerAccount(t *testing.T) {
	entries := []domain.Entry{
		entry("cash", "100", "0"),
		entry("cash", "0", "30"),
		entry("sales", "0", "70"),
	}

	changes := accounting.BalanceChanges(entries)

	assert.Len(t, changes, 2)
	assert.True(t, changes["cash"].Equal(decimal.NewFromInt(70)))
	assert.True(t, changes["sales"].Equal(decimal.NewFromInt(-70)))
}

func TestNegateChanges_IsExactInverse(t *testing.T) {
	entries := []domain.Entry{
		entry("cash", "100", "0"),
		entry("sales", "0", "100"),
	}

	changes := accounting.BalanceChanges(entries)
	inverse := accounting.NegateChanges(changes)

	for accountID, delta := range changes {
		assert.True(t, delta.Add(inverse[accountID]).IsZero(), "account %s", accountID)
	}
}

func TestFormatSequenceNumber(t *testing.T) {
	assert.Equal(t, "TXN000001", accounting.FormatSequenceNumber("TXN", 1))
	assert.Equal(t, "PV000042", accounting.FormatSequenceNumber("PV", 42))
	assert.Equal(t, "JV123456", accounting.FormatSequenceNumber("JV", 123456))
	assert.Equal(t, "RV1234567", accounting.FormatSequenceNumber("RV", 1234567), "sequences past six digits keep growing")
}
