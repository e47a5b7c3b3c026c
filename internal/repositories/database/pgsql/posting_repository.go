package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/accounting"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/pagination"
)

const transactionColumns = `transaction_id, transaction_number, date, description, reference, total_amount, created_at, created_by, last_updated_at, last_updated_by`

type PgxPostingRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxPostingRepository creates a new repository for the posting engine.
// It needs the account repository's in-transaction operations to lock rows
// and move balances inside its own database transactions.
func newPgxPostingRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.PostingRepositoryFacade {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.PostingRepositoryFacade = (*PgxPostingRepository)(nil)

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.TransactionNumber,
		&txn.Date,
		&txn.Description,
		&txn.Reference,
		&txn.TotalAmount,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	return txn, err
}

func changeAccountIDs(changes map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(changes))
	for id := range changes {
		ids = append(ids, id)
	}
	return ids
}

func queueEntryInserts(batch *pgx.Batch, entries []domain.Entry) {
	const query = `
		INSERT INTO entries (entry_id, transaction_id, account_id, debit_amount, credit_amount, description)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, e := range entries {
		batch.Queue(query, e.EntryID, e.TransactionID, e.AccountID, e.DebitAmount, e.CreditAmount, e.Description)
	}
}

func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// findEntriesInTx reads the stored entries of a transaction within the
// caller's database transaction. The amend/void paths reverse exactly what
// is read here, never what a service read earlier.
func findEntriesInTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.Entry, error) {
	query := `
		SELECT entry_id, transaction_id, account_id, debit_amount, credit_amount, description
		FROM entries WHERE transaction_id = $1 ORDER BY entry_id;
	`
	rows, err := tx.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stored entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.AccountID, &e.DebitAmount, &e.CreditAmount, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan stored entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveTransaction allocates the next transaction number and posts the header,
// entries, and balance deltas as one database transaction.
func (r *PgxPostingRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, changeAccountIDs(balanceChanges)); err != nil {
		return err
	}

	seq, err := nextSequence(ctx, tx, counterTransaction)
	if err != nil {
		return err
	}
	txn.TransactionNumber = accounting.FormatSequenceNumber(domain.TransactionNumberPrefix, seq)

	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, headerQuery,
		txn.TransactionID,
		txn.TransactionNumber,
		txn.Date,
		txn.Description,
		txn.Reference,
		txn.TotalAmount,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	queueEntryInserts(batch, txn.Entries)
	if err := execBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("failed to insert entries for transaction %s: %w", txn.TransactionID, err)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReplaceTransaction swaps the transaction's entry set. The stored entries'
// effect is negated and folded into newChanges so each touched account gets a
// single net update.
func (r *PgxPostingRepository) ReplaceTransaction(ctx context.Context, txn *domain.Transaction, newChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	stored, err := findEntriesInTx(ctx, tx, txn.TransactionID)
	if err != nil {
		return err
	}

	netChanges := make(map[string]decimal.Decimal, len(newChanges))
	for id, delta := range newChanges {
		netChanges[id] = delta
	}
	for id, delta := range accounting.NegateChanges(accounting.BalanceChanges(stored)) {
		netChanges[id] = netChanges[id].Add(delta)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, changeAccountIDs(netChanges)); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entries WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
		return fmt.Errorf("failed to delete entries of transaction %s: %w", txn.TransactionID, err)
	}

	headerQuery := `
		UPDATE transactions
		SET date = $2, description = $3, reference = $4, total_amount = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		txn.TransactionID,
		txn.Date,
		txn.Description,
		txn.Reference,
		txn.TotalAmount,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrNotFound)
	}

	batch := &pgx.Batch{}
	queueEntryInserts(batch, txn.Entries)
	if err := execBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("failed to insert entries for transaction %s: %w", txn.TransactionID, err)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, netChanges, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction reverses the stored entries' balance effect and removes
// the transaction with its entries.
func (r *PgxPostingRepository) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	stored, err := findEntriesInTx(ctx, tx, transactionID)
	if err != nil {
		return err
	}
	reversal := accounting.NegateChanges(accounting.BalanceChanges(stored))

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, changeAccountIDs(reversal)); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entries WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete entries of transaction %s: %w", transactionID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, reversal, userID, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPostingRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

func (r *PgxPostingRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	query := `
		SELECT e.entry_id, e.transaction_id, e.account_id, e.debit_amount, e.credit_amount, e.description,
		       a.code, a.name
		FROM entries e
		JOIN accounts a ON a.account_id = e.account_id
		WHERE e.transaction_id = $1
		ORDER BY e.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.AccountID, &e.DebitAmount, &e.CreditAmount, &e.Description, &e.AccountCode, &e.AccountName); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListTransactions pages through headers newest first using a keyset cursor
// over (date, created_at).
func (r *PgxPostingRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		date, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (date, created_at) < ($1, $2)`
		args = append(args, date, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return txns, token, nil
}
