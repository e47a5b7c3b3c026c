package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-side aggregate queries reports are
// built from. All methods are pure reads over the entry log.
type ReportingRepository interface {
	// GetTrialBalanceData sums debits and credits per active account over
	// transactions dated on or before asOf.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetAccountNetAmounts returns the net (debit - credit) per account of
	// the given types over transactions dated within [from, to]. A zero
	// `from` means no lower bound.
	GetAccountNetAmounts(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountAmount, error)

	// GetCashFlowData returns gross debit and credit totals per cash account
	// over the period. Cash accounts carry the is_cash flag or a
	// cash-identifying name token.
	GetCashFlowData(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error)

	// GetLedgerLines returns the entries touching one account in date then
	// transaction-id order, with transaction context joined, without running
	// balances.
	GetLedgerLines(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerLine, error)

	// GetOpeningBalance returns the account's net balance from entries dated
	// strictly before from.
	GetOpeningBalance(ctx context.Context, accountID string, from time.Time) (decimal.Decimal, error)

	// GetAgingLines returns dated entry lines against accounts whose name
	// matches the given tokens, as of the report date.
	GetAgingLines(ctx context.Context, asOf time.Time, nameTokens []string) ([]domain.LedgerLine, error)
}
