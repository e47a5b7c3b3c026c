package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report. Totals are the
// sums of the returned rows; for well-formed books debit equals credit.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance report to a DTO.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf: report.AsOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(report.Rows)),
	}
	for i, row := range report.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
		}
	}
	resp.Totals.Debit = report.TotalDebit
	resp.Totals.Credit = report.TotalCredit
	return resp
}

// AccountAmountResponse represents an account with its amount in a financial report.
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		res[i] = AccountAmountResponse{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.Name,
			Amount:      a.NetAmount,
		}
	}
	return res
}

// BalanceSheetResponse represents the balance sheet report.
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:        report.AsOf.Format("2006-01-02"),
		Assets:      toAccountAmountResponses(report.Assets),
		Liabilities: toAccountAmountResponses(report.Liabilities),
		Equity:      toAccountAmountResponses(report.Equity),
	}
	resp.Summary.TotalAssets = report.TotalAssets
	resp.Summary.TotalLiabilities = report.TotalLiabilities
	resp.Summary.TotalEquity = report.TotalEquity
	return resp
}

// ProfitAndLossResponse represents the profit and loss report.
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Income   []AccountAmountResponse `json:"income"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalIncome   decimal.Decimal `json:"totalIncome"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetIncome     decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO.
func ToProfitAndLossResponse(report *domain.ProfitAndLossReport) ProfitAndLossResponse {
	resp := ProfitAndLossResponse{
		FromDate: report.FromDate.Format("2006-01-02"),
		ToDate:   report.ToDate.Format("2006-01-02"),
		Income:   toAccountAmountResponses(report.Income),
		Expenses: toAccountAmountResponses(report.Expenses),
	}
	resp.Summary.TotalIncome = report.TotalIncome
	resp.Summary.TotalExpenses = report.TotalExpenses
	resp.Summary.NetIncome = report.NetIncome
	return resp
}

// CashFlowResponse represents the cash flow report.
type CashFlowResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Accounts []AccountAmountResponse `json:"accounts"`
	Summary  struct {
		Inflow  decimal.Decimal `json:"inflow"`
		Outflow decimal.Decimal `json:"outflow"`
		NetFlow decimal.Decimal `json:"netFlow"`
	} `json:"summary"`
}

// ToCashFlowResponse converts a domain cash flow report to a DTO.
func ToCashFlowResponse(report *domain.CashFlowReport) CashFlowResponse {
	resp := CashFlowResponse{
		FromDate: report.FromDate.Format("2006-01-02"),
		ToDate:   report.ToDate.Format("2006-01-02"),
		Accounts: toAccountAmountResponses(report.Accounts),
	}
	resp.Summary.Inflow = report.Inflow
	resp.Summary.Outflow = report.Outflow
	resp.Summary.NetFlow = report.NetFlow
	return resp
}

// LedgerLineResponse is one row of a per-account ledger view.
type LedgerLineResponse struct {
	EntryID           string          `json:"entryID"`
	TransactionID     string          `json:"transactionID"`
	TransactionNumber string          `json:"transactionNumber"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Debit             decimal.Decimal `json:"debit"`
	Credit            decimal.Decimal `json:"credit"`
	RunningBalance    decimal.Decimal `json:"runningBalance"`
}

// LedgerResponse is the chronological ledger of one account.
type LedgerResponse struct {
	AccountID      string               `json:"accountID"`
	AccountCode    string               `json:"accountCode"`
	AccountName    string               `json:"accountName"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
}

// ToLedgerResponse converts a domain ledger report to a DTO.
func ToLedgerResponse(report *domain.LedgerReport) LedgerResponse {
	resp := LedgerResponse{
		AccountID:      report.AccountID,
		AccountCode:    report.AccountCode,
		AccountName:    report.AccountName,
		OpeningBalance: report.OpeningBalance,
		ClosingBalance: report.ClosingBalance,
		Lines:          make([]LedgerLineResponse, len(report.Lines)),
	}
	for i, line := range report.Lines {
		resp.Lines[i] = LedgerLineResponse{
			EntryID:           line.EntryID,
			TransactionID:     line.TransactionID,
			TransactionNumber: line.TransactionNumber,
			Date:              line.TransactionDate,
			Description:       line.Description,
			Debit:             line.DebitAmount,
			Credit:            line.CreditAmount,
			RunningBalance:    line.RunningBalance,
		}
	}
	return resp
}

// AgingResponse represents the receivable/payable aging report.
type AgingResponse struct {
	AsOf    string `json:"asOf"`
	Kind    string `json:"kind"`
	Buckets struct {
		Current decimal.Decimal `json:"current"`
		Days30  decimal.Decimal `json:"days30"`
		Days60  decimal.Decimal `json:"days60"`
		Days90  decimal.Decimal `json:"days90"`
		Over90  decimal.Decimal `json:"over90"`
	} `json:"buckets"`
	Total decimal.Decimal `json:"total"`
}

// ToAgingResponse converts a domain aging report to a DTO.
func ToAgingResponse(report *domain.AgingReport) AgingResponse {
	resp := AgingResponse{
		AsOf:  report.AsOf.Format("2006-01-02"),
		Kind:  string(report.Kind),
		Total: report.Total,
	}
	resp.Buckets.Current = report.Buckets.Current
	resp.Buckets.Days30 = report.Buckets.Days30
	resp.Buckets.Days60 = report.Buckets.Days60
	resp.Buckets.Days90 = report.Buckets.Days90
	resp.Buckets.Over90 = report.Buckets.Over90
	return resp
}
