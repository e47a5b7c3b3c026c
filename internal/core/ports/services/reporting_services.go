package services

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// ReportingSvcFacade derives financial statements from the entry log. All
// operations are pure reads; none mutate state.
type ReportingSvcFacade interface {
	// TrialBalance lists per-account debit/credit totals as of a date.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// BalanceSheet partitions asset/liability/equity balances as of a date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// ProfitAndLoss partitions income/expense activity over [from, to].
	// from is mandatory.
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error)

	// CashFlow reports gross in/out and net across cash accounts.
	CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error)

	// Ledger returns one account's chronological entries with running balance.
	Ledger(ctx context.Context, accountID string, from, to *time.Time) (*domain.LedgerReport, error)

	// Aging buckets open receivable or payable amounts by day-age.
	Aging(ctx context.Context, asOf time.Time, kind domain.AgingKind) (*domain.AgingReport, error)
}
