package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"` // debit - credit
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// TrialBalanceReport lists every account with non-zero activity as of a date.
// TotalDebit and TotalCredit must be equal for books produced entirely by the
// posting engine.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// BalanceSheetReport partitions asset/liability/equity accounts as of a date.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// ProfitAndLossReport partitions income/expense activity over a period.
type ProfitAndLossReport struct {
	FromDate      time.Time       `json:"fromDate"`
	ToDate        time.Time       `json:"toDate"`
	Income        []AccountAmount `json:"income"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// CashFlowReport reports gross inflow/outflow and net movement across cash
// accounts over a period. Cash accounts are identified by the explicit IsCash
// flag, with a name-token fallback for charts imported from legacy systems.
type CashFlowReport struct {
	FromDate time.Time       `json:"fromDate"`
	ToDate   time.Time       `json:"toDate"`
	Accounts []AccountAmount `json:"accounts"`
	Inflow   decimal.Decimal `json:"inflow"`
	Outflow  decimal.Decimal `json:"outflow"`
	NetFlow  decimal.Decimal `json:"netFlow"`
}

// LedgerReport is the chronological entry view for one account with running
// balances folded in date-then-id order.
type LedgerReport struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	Lines          []LedgerLine    `json:"lines"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// AgingKind selects which side of the books an aging report covers.
type AgingKind string

const (
	AgingReceivable AgingKind = "RECEIVABLE"
	AgingPayable    AgingKind = "PAYABLE"
)

// AgingBuckets holds aged amounts bucketed by days outstanding from the
// report date.
type AgingBuckets struct {
	Current decimal.Decimal `json:"current"` // aged less than a day
	Days30  decimal.Decimal `json:"days30"`  // 1-30 days
	Days60  decimal.Decimal `json:"days60"`  // 31-60 days
	Days90  decimal.Decimal `json:"days90"`  // 61-90 days
	Over90  decimal.Decimal `json:"over90"`  // more than 90 days
}

// Total returns the sum across all buckets.
func (b AgingBuckets) Total() decimal.Decimal {
	return b.Current.Add(b.Days30).Add(b.Days60).Add(b.Days90).Add(b.Over90)
}

// AgingReport buckets open receivable or payable entries by day-age.
type AgingReport struct {
	AsOf    time.Time       `json:"asOf"`
	Kind    AgingKind       `json:"kind"`
	Buckets AgingBuckets    `json:"buckets"`
	Total   decimal.Decimal `json:"total"`
}
