package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
)

var (
	// ErrMissingParameter is returned when a mandatory report parameter is
	// absent, e.g. the from date of a profit-and-loss report.
	ErrMissingParameter = fmt.Errorf("missing required parameter: %w", apperrors.ErrValidation)

	// ErrInvalidAgingKind is returned for an aging kind outside
	// receivable/payable.
	ErrInvalidAgingKind = fmt.Errorf("invalid aging kind: %w", apperrors.ErrValidation)
)

// Aging buckets are bounded by days outstanding from the report date. Each
// constant is the inclusive upper bound of its bucket; anything older falls
// into the over-90 bucket.
const (
	agingBucket30 = 30
	agingBucket60 = 60
	agingBucket90 = 90
)

// reportingService implements ReportingSvcFacade. Every report is a pure
// projection over the entry log; nothing here mutates state, and totals in
// each report are sums of the returned line items.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: asOf", ErrMissingParameter)
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data")
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{AsOf: asOf, Rows: make([]domain.TrialBalanceRow, 0, len(rows))}
	for _, row := range rows {
		row.Balance = row.Debit.Sub(row.Credit)
		if row.Debit.IsZero() && row.Credit.IsZero() && row.Balance.IsZero() {
			continue
		}
		report.Rows = append(report.Rows, row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("as_of", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: asOf", ErrMissingParameter)
	}

	amounts, err := s.reportingRepo.GetAccountNetAmounts(ctx, time.Time{}, asOf,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data")
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	accountIDs := make([]string, len(amounts))
	for i, a := range amounts {
		accountIDs[i] = a.AccountID
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report accounts: %w", err)
	}

	report := &domain.BalanceSheetReport{AsOf: asOf}
	for _, a := range amounts {
		acc, found := accounts[a.AccountID]
		if !found {
			continue
		}
		switch acc.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, a)
			report.TotalAssets = report.TotalAssets.Add(a.NetAmount)
		case domain.Liability:
			// liabilities accumulate on the credit side; report them positive
			a.NetAmount = a.NetAmount.Neg()
			report.Liabilities = append(report.Liabilities, a)
			report.TotalLiabilities = report.TotalLiabilities.Add(a.NetAmount)
		case domain.Equity:
			a.NetAmount = a.NetAmount.Neg()
			report.Equity = append(report.Equity, a)
			report.TotalEquity = report.TotalEquity.Add(a.NetAmount)
		}
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("as_of", asOf.Format(time.DateOnly)),
		slog.String("total_assets", report.TotalAssets.String()))
	return report, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error) {
	if from.IsZero() {
		return nil, fmt.Errorf("%w: from", ErrMissingParameter)
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}

	amounts, err := s.reportingRepo.GetAccountNetAmounts(ctx, from, to,
		[]domain.AccountType{domain.Income, domain.Expense})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data")
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	accountIDs := make([]string, len(amounts))
	for i, a := range amounts {
		accountIDs[i] = a.AccountID
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report accounts: %w", err)
	}

	report := &domain.ProfitAndLossReport{FromDate: from, ToDate: to}
	for _, a := range amounts {
		acc, found := accounts[a.AccountID]
		if !found {
			continue
		}
		switch acc.AccountType {
		case domain.Income:
			// income accumulates on the credit side; report it positive
			a.NetAmount = a.NetAmount.Neg()
			report.Income = append(report.Income, a)
			report.TotalIncome = report.TotalIncome.Add(a.NetAmount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, a)
			report.TotalExpenses = report.TotalExpenses.Add(a.NetAmount)
		}
	}
	report.NetIncome = report.TotalIncome.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Profit and loss generated",
		slog.String("from", from.Format(time.DateOnly)),
		slog.String("to", to.Format(time.DateOnly)),
		slog.String("net_income", report.NetIncome.String()))
	return report, nil
}

func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error) {
	if from.IsZero() {
		return nil, fmt.Errorf("%w: from", ErrMissingParameter)
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}

	rows, err := s.reportingRepo.GetCashFlowData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve cash flow data")
		return nil, fmt.Errorf("failed to retrieve cash flow data: %w", err)
	}

	report := &domain.CashFlowReport{FromDate: from, ToDate: to}
	for _, row := range rows {
		net := row.Debit.Sub(row.Credit)
		report.Accounts = append(report.Accounts, domain.AccountAmount{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			Name:        row.AccountName,
			NetAmount:   net,
		})
		report.Inflow = report.Inflow.Add(row.Debit)
		report.Outflow = report.Outflow.Add(row.Credit)
	}
	report.NetFlow = report.Inflow.Sub(report.Outflow)

	s.LogInfo(ctx, "Cash flow generated",
		slog.String("from", from.Format(time.DateOnly)),
		slog.String("net_flow", report.NetFlow.String()))
	return report, nil
}

func (s *reportingService) Ledger(ctx context.Context, accountID string, from, to *time.Time) (*domain.LedgerReport, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	opening := decimal.Zero
	if from != nil {
		opening, err = s.reportingRepo.GetOpeningBalance(ctx, accountID, *from)
		if err != nil {
			return nil, fmt.Errorf("failed to compute opening balance: %w", err)
		}
	}

	lines, err := s.reportingRepo.GetLedgerLines(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve ledger lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve ledger lines: %w", err)
	}

	// Fold debit - credit in the repository's date-then-id order.
	running := opening
	for i := range lines {
		running = running.Add(lines[i].Delta())
		lines[i].RunningBalance = running
	}

	report := &domain.LedgerReport{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		Lines:          lines,
		OpeningBalance: opening,
		ClosingBalance: running,
	}

	s.LogInfo(ctx, "Ledger generated",
		slog.String("account_id", accountID),
		slog.Int("line_count", len(lines)))
	return report, nil
}

// agingNameTokens maps an aging kind to the account-name tokens used to find
// the control account. Name matching is a compatibility shim for charts
// without explicit role flags.
func agingNameTokens(kind domain.AgingKind) []string {
	switch kind {
	case domain.AgingReceivable:
		return []string{"accounts receivable", "receivable"}
	case domain.AgingPayable:
		return []string{"accounts payable", "payable"}
	}
	return nil
}

func (s *reportingService) Aging(ctx context.Context, asOf time.Time, kind domain.AgingKind) (*domain.AgingReport, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: asOf", ErrMissingParameter)
	}
	tokens := agingNameTokens(kind)
	if tokens == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAgingKind, kind)
	}

	lines, err := s.reportingRepo.GetAgingLines(ctx, asOf, tokens)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve aging data", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to retrieve aging data: %w", err)
	}

	report := &domain.AgingReport{AsOf: asOf, Kind: kind}
	for _, line := range lines {
		// Receivables age on the debit side, payables on the credit side.
		amount := line.DebitAmount
		if kind == domain.AgingPayable {
			amount = line.CreditAmount
		}
		if amount.IsZero() {
			continue
		}

		age := int(asOf.Sub(line.TransactionDate).Hours() / 24)
		switch {
		case age < 1:
			report.Buckets.Current = report.Buckets.Current.Add(amount)
		case age <= agingBucket30:
			report.Buckets.Days30 = report.Buckets.Days30.Add(amount)
		case age <= agingBucket60:
			report.Buckets.Days60 = report.Buckets.Days60.Add(amount)
		case age <= agingBucket90:
			report.Buckets.Days90 = report.Buckets.Days90.Add(amount)
		default:
			report.Buckets.Over90 = report.Buckets.Over90.Add(amount)
		}
	}
	report.Total = report.Buckets.Total()

	s.LogInfo(ctx, "Aging report generated",
		slog.String("kind", string(kind)),
		slog.String("total", report.Total.String()))
	return report, nil
}
