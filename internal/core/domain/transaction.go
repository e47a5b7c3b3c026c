package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionNumberPrefix is the public prefix of ledger transaction numbers.
// Numbers are the prefix followed by a zero-padded six digit sequence, e.g.
// TXN000042.
const TransactionNumberPrefix = "TXN"

// Transaction is a posted journal header owning a balanced set of entries.
// There is no draft state: a transaction either exists with all of its
// entries applied to account balances, or it does not exist at all.
type Transaction struct {
	TransactionID     string          `json:"transactionID"`
	TransactionNumber string          `json:"transactionNumber"` // TXN + 6-digit sequence
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Reference         string          `json:"reference"` // optional free text
	TotalAmount       decimal.Decimal `json:"totalAmount"` // sum of debit amounts
	Entries           []Entry         `json:"entries,omitempty"`
	AuditFields
}

// Entry is a single debit/credit line of a transaction. Entries cannot
// outlive their transaction; they are inserted and deleted with it.
type Entry struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
	AccountCode   string          `json:"accountCode,omitempty"` // joined for display
	AccountName   string          `json:"accountName,omitempty"` // joined for display
}

// Delta returns the signed effect of this entry on its account balance.
func (e Entry) Delta() decimal.Decimal {
	return e.DebitAmount.Sub(e.CreditAmount)
}

// LedgerLine is one row of a per-account ledger view: an entry together with
// its transaction context and the running balance after the entry is folded in.
type LedgerLine struct {
	Entry
	TransactionNumber string          `json:"transactionNumber"`
	TransactionDate   time.Time       `json:"transactionDate"`
	RunningBalance    decimal.Decimal `json:"runningBalance"`
}
