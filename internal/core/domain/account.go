package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the five closed account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents one node in the chart of accounts.
//
// Balance is denormalized: it always equals the sum of (debit - credit) over
// every entry referencing this account, maintained exclusively by the posting
// engine inside the same database transaction that writes the entries.
type Account struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"` // unique, stable business key
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID string          `json:"parentAccountID"` // empty when root
	Description     string          `json:"description"`
	IsCash          bool            `json:"isCash"` // explicit cash-role flag for the cash-flow report
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"`
	ParentName      string          `json:"parentName,omitempty"` // display only, resolved on read
	AuditFields
}
