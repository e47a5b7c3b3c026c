package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is one debit/credit line of a submitted transaction. Omitted
// amounts default to zero; a line normally carries exactly one side.
type EntryRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// PostTransactionRequest is the submission shape consumed by the posting
// engine: {date, description, reference?, entries[]}.
type PostTransactionRequest struct {
	Date        time.Time      `json:"date" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Reference   string         `json:"reference"`
	Entries     []EntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// AmendTransactionRequest fully replaces a transaction's header fields and
// entry set. Partial entry edits are not supported.
type AmendTransactionRequest = PostTransactionRequest

// EntryResponse is a transaction line with account code/name joined for display.
type EntryResponse struct {
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// TransactionResponse is the full transaction with resolved entries.
type TransactionResponse struct {
	TransactionID     string          `json:"transactionID"`
	TransactionNumber string          `json:"transactionNumber"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Reference         string          `json:"reference,omitempty"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Entries           []EntryResponse `json:"entries"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse.
func ToEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:      e.EntryID,
		AccountID:    e.AccountID,
		AccountCode:  e.AccountCode,
		AccountName:  e.AccountName,
		DebitAmount:  e.DebitAmount,
		CreditAmount: e.CreditAmount,
		Description:  e.Description,
	}
}

// ToTransactionResponse converts a domain.Transaction with entries to a response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = ToEntryResponse(e)
	}
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		TransactionNumber: txn.TransactionNumber,
		Date:              txn.Date,
		Description:       txn.Description,
		Reference:         txn.Reference,
		TotalAmount:       txn.TotalAmount,
		Entries:           entries,
		CreatedAt:         txn.CreatedAt,
		CreatedBy:         txn.CreatedBy,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions with the next cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
