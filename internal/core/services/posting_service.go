package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/accounting"
)

var (
	// ErrTooFewEntries is returned for a transaction with fewer than two
	// entries. Double-entry bookkeeping needs at least a debit and a credit
	// side, though one account may appear more than once.
	ErrTooFewEntries = fmt.Errorf("transaction must have at least two entries: %w", apperrors.ErrValidation)

	// ErrUnbalancedEntries is returned when the debit and credit sides
	// differ by more than the balance tolerance.
	ErrUnbalancedEntries = fmt.Errorf("debits and credits do not balance: %w", apperrors.ErrValidation)

	// ErrNegativeAmount is returned for an entry with a negative debit or
	// credit amount.
	ErrNegativeAmount = fmt.Errorf("entry amounts must not be negative: %w", apperrors.ErrValidation)

	// ErrUnknownAccount is returned when an entry references a missing or
	// inactive account.
	ErrUnknownAccount = fmt.Errorf("entry references an unknown or inactive account: %w", apperrors.ErrValidation)

	// ErrMissingDescription is returned when the transaction description is
	// empty.
	ErrMissingDescription = fmt.Errorf("transaction description is required: %w", apperrors.ErrValidation)

	// ErrMissingDate is returned when the transaction date is unset.
	ErrMissingDate = fmt.Errorf("transaction date is required: %w", apperrors.ErrValidation)
)

// postingService implements the PostingSvcFacade interface: it validates,
// applies, replaces, and reverses the effect of transactions on account
// balances through the posting repository's atomic operations.
type postingService struct {
	BaseService
	postingRepo portsrepo.PostingRepositoryFacade
	accountSvc  portssvc.AccountReaderSvc
}

// NewPostingService creates a new posting service.
func NewPostingService(postingRepo portsrepo.PostingRepositoryFacade, accountSvc portssvc.AccountReaderSvc) portssvc.PostingSvcFacade {
	return &postingService{
		postingRepo: postingRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// buildEntries converts request lines into domain entries owned by txnID.
func buildEntries(txnID string, reqs []dto.EntryRequest) []domain.Entry {
	entries := make([]domain.Entry, len(reqs))
	for i, r := range reqs {
		entries[i] = domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: txnID,
			AccountID:     r.AccountID,
			DebitAmount:   r.DebitAmount,
			CreditAmount:  r.CreditAmount,
			Description:   r.Description,
		}
	}
	return entries
}

// validateEntrySet enforces the double-entry invariants on a proposed entry
// set. It is pure: account lookups are read-only and nothing is mutated.
func (s *postingService) validateEntrySet(ctx context.Context, date time.Time, description string, entries []domain.Entry) error {
	if date.IsZero() {
		return ErrMissingDate
	}
	if description == "" {
		return ErrMissingDescription
	}
	if len(entries) < 2 {
		return ErrTooFewEntries
	}

	accountIDs := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: account %s", ErrNegativeAmount, e.AccountID)
		}
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			accountIDs = append(accountIDs, e.AccountID)
		}
	}

	if !accounting.IsBalanced(entries) {
		return fmt.Errorf("%w: debits %s, credits %s",
			ErrUnbalancedEntries,
			accounting.SumDebits(entries).String(),
			accounting.SumCredits(entries).String())
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve entry accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: %s", ErrUnknownAccount, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s is inactive", ErrUnknownAccount, id)
		}
	}
	return nil
}

// PostTransaction validates and atomically posts a new transaction. The
// transaction number is allocated by the repository inside the same database
// transaction that inserts the header, so concurrent posts cannot claim the
// same number.
func (s *postingService) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	txnID := uuid.NewString()
	entries := buildEntries(txnID, req.Entries)

	if err := s.validateEntrySet(ctx, req.Date, req.Description, entries); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: txnID,
		Date:          req.Date,
		Description:   req.Description,
		Reference:     req.Reference,
		TotalAmount:   accounting.SumDebits(entries),
		Entries:       entries,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	balanceChanges := accounting.BalanceChanges(entries)
	if err := s.postingRepo.SaveTransaction(ctx, &txn, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to post transaction", slog.String("transaction_id", txnID))
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_number", txn.TransactionNumber),
		slog.String("total_amount", txn.TotalAmount.String()))
	return s.GetTransactionByID(ctx, txn.TransactionID)
}

// AmendTransaction replaces the transaction's header fields and entry set.
// The repository reverses the stored entries and applies the new ones in one
// database transaction; a reader can never observe the old effect reversed
// without the new effect applied.
func (s *postingService) AmendTransaction(ctx context.Context, transactionID string, req dto.AmendTransactionRequest, userID string) (*domain.Transaction, error) {
	existing, err := s.postingRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	entries := buildEntries(transactionID, req.Entries)
	if err := s.validateEntrySet(ctx, req.Date, req.Description, entries); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:     transactionID,
		TransactionNumber: existing.TransactionNumber,
		Date:              req.Date,
		Description:       req.Description,
		Reference:         req.Reference,
		TotalAmount:       accounting.SumDebits(entries),
		Entries:           entries,
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			CreatedBy:     existing.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	newChanges := accounting.BalanceChanges(entries)
	if err := s.postingRepo.ReplaceTransaction(ctx, &txn, newChanges); err != nil {
		s.LogError(ctx, err, "Failed to amend transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to amend transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction amended",
		slog.String("transaction_id", transactionID),
		slog.String("transaction_number", txn.TransactionNumber))
	return s.GetTransactionByID(ctx, transactionID)
}

// VoidTransaction reverses the transaction's balance effect and deletes the
// transaction with its entries.
func (s *postingService) VoidTransaction(ctx context.Context, transactionID string, userID string) error {
	if _, err := s.postingRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return err
	}

	if err := s.postingRepo.DeleteTransaction(ctx, transactionID, userID); err != nil {
		s.LogError(ctx, err, "Failed to void transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to void transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction voided", slog.String("transaction_id", transactionID))
	return nil
}

func (s *postingService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.postingRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	entries, err := s.postingRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for transaction %s: %w", transactionID, err)
	}
	txn.Entries = entries
	return txn, nil
}

func (s *postingService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, nextToken, err := s.postingRepo.ListTransactions(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		entries, err := s.postingRepo.FindEntriesByTransactionID(ctx, txns[i].TransactionID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve entries for transaction %s: %w", txns[i].TransactionID, err)
		}
		txns[i].Entries = entries
		resp.Transactions[i] = dto.ToTransactionResponse(&txns[i])
	}
	return resp, nil
}
