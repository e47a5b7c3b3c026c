package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Counter names for the document number sequences.
const (
	counterTransaction    = "transaction"
	counterVoucherPayment = "voucher_payment"
	counterVoucherReceipt = "voucher_receipt"
	counterVoucherJournal = "voucher_journal"
)

// nextSequence atomically increments and returns the named counter within the
// caller's database transaction. The row stays locked until that transaction
// ends, so two concurrent allocations of the same counter serialize and a
// rollback releases the number unused (gaps are possible, duplicates are not).
func nextSequence(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	const query = `
		INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to allocate sequence %s: %w", name, err)
	}
	return value, nil
}
