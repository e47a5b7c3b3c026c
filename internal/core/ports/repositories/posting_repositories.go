package repositories

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingReader defines read operations for posted transactions.
type PostingReader interface {
	// FindTransactionByID retrieves a transaction header by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindEntriesByTransactionID retrieves the entries of a transaction with
	// account code/name joined for display.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error)

	// ListTransactions retrieves a page of transaction headers in reverse
	// chronological order using token-based pagination.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// PostingWriter defines the atomic mutations of the ledger. Every method is
// one all-or-nothing database transaction: the header, the entry rows, the
// balance deltas, and (for SaveTransaction) the sequence allocation commit
// together or not at all.
type PostingWriter interface {
	// SaveTransaction allocates the next transaction number, inserts the
	// header and entries, and applies balanceChanges to account balances.
	// The allocated number is written back into txn.TransactionNumber.
	SaveTransaction(ctx context.Context, txn *domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// ReplaceTransaction reverses the stored entries of txn.TransactionID,
	// deletes them, updates the header, inserts the new entries, and applies
	// newChanges. The stored entries are read and reversed inside the same
	// database transaction so no reader can observe a half-amended state.
	ReplaceTransaction(ctx context.Context, txn *domain.Transaction, newChanges map[string]decimal.Decimal) error

	// DeleteTransaction reverses the stored entries' balance effect, then
	// deletes the entries and the header.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}

// PostingRepositoryFacade combines posting reader and writer interfaces.
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
}
