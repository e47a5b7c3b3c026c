package accounting

import (
	"fmt"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum absolute difference allowed between the
// debit and credit sides of one transaction. It absorbs floating-point
// summation noise from decimal inputs; it is not meant to permit real
// imbalance.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// SumDebits returns the sum of debit amounts across entries.
func SumDebits(entries []domain.Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.DebitAmount)
	}
	return sum
}

// SumCredits returns the sum of credit amounts across entries.
func SumCredits(entries []domain.Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.CreditAmount)
	}
	return sum
}

// IsBalanced reports whether the entry set satisfies the double-entry
// invariant within BalanceTolerance.
func IsBalanced(entries []domain.Entry) bool {
	diff := SumDebits(entries).Sub(SumCredits(entries))
	return diff.Abs().LessThanOrEqual(BalanceTolerance)
}

// BalanceChanges folds the entries of one transaction into a net balance
// delta per account id. Applying the returned deltas to account balances is
// exactly the effect of posting the transaction.
func BalanceChanges(entries []domain.Entry) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		changes[e.AccountID] = changes[e.AccountID].Add(e.Delta())
	}
	return changes
}

// NegateChanges returns the exact inverse of a balance-change map. Applying
// changes then NegateChanges(changes) is a no-op on every balance.
func NegateChanges(changes map[string]decimal.Decimal) map[string]decimal.Decimal {
	inverse := make(map[string]decimal.Decimal, len(changes))
	for id, delta := range changes {
		inverse[id] = delta.Neg()
	}
	return inverse
}

// FormatSequenceNumber renders a document number from its prefix and counter
// value, e.g. FormatSequenceNumber("TXN", 1) == "TXN000001". The zero-padded
// six digit format is a public contract.
func FormatSequenceNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s%06d", prefix, seq)
}
