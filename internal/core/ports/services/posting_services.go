package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// PostingReaderSvc defines read operations for posted transactions.
type PostingReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its resolved entries.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions with entries.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// PostingWriterSvc defines the ledger mutations. Each call is validated
// first and then applied as one atomic unit, or not at all.
type PostingWriterSvc interface {
	// PostTransaction validates and atomically posts a new transaction.
	PostTransaction(ctx context.Context, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// AmendTransaction replaces a transaction's header and entry set,
	// reversing the old balance effect and applying the new one atomically.
	AmendTransaction(ctx context.Context, transactionID string, req dto.AmendTransactionRequest, userID string) (*domain.Transaction, error)

	// VoidTransaction reverses a transaction's balance effect and removes it
	// together with its entries.
	VoidTransaction(ctx context.Context, transactionID string, userID string) error
}

// PostingSvcFacade combines posting reader and writer service interfaces.
type PostingSvcFacade interface {
	PostingReaderSvc
	PostingWriterSvc
}
