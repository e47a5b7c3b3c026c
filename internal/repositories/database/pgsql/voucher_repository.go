package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/accounting"
)

const voucherColumns = `voucher_id, voucher_number, voucher_type, date, payee, amount, description, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for voucher data.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

func voucherCounterName(t domain.VoucherType) string {
	switch t {
	case domain.VoucherPayment:
		return counterVoucherPayment
	case domain.VoucherReceipt:
		return counterVoucherReceipt
	default:
		return counterVoucherJournal
	}
}

func scanVoucher(row rowScanner) (domain.Voucher, error) {
	var v domain.Voucher
	err := row.Scan(
		&v.VoucherID,
		&v.VoucherNumber,
		&v.VoucherType,
		&v.Date,
		&v.Payee,
		&v.Amount,
		&v.Description,
		&v.Status,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	return v, err
}

// SaveVoucher allocates the next number from the voucher type's own counter
// and inserts the voucher in one database transaction.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher *domain.Voucher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	seq, err := nextSequence(ctx, tx, voucherCounterName(voucher.VoucherType))
	if err != nil {
		return err
	}
	voucher.VoucherNumber = accounting.FormatSequenceNumber(voucher.VoucherType.NumberPrefix(), seq)

	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	if _, err := tx.Exec(ctx, query,
		voucher.VoucherID,
		voucher.VoucherNumber,
		voucher.VoucherType,
		voucher.Date,
		voucher.Payee,
		voucher.Amount,
		voucher.Description,
		voucher.Status,
		voucher.CreatedAt,
		voucher.CreatedBy,
		voucher.LastUpdatedAt,
		voucher.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert voucher %s: %w", voucher.VoucherID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`
	v, err := scanVoucher(r.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("voucher %s: %w", voucherID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	return &v, nil
}

func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, voucherType *domain.VoucherType, status *domain.VoucherStatus, limit, offset int) ([]domain.Voucher, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE 1=1`
	args := []any{}
	if voucherType != nil {
		args = append(args, *voucherType)
		query += fmt.Sprintf(` AND voucher_type = $%d`, len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY date DESC, voucher_number DESC LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher row: %w", err)
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

func (r *PgxVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	query := `
		UPDATE vouchers
		SET date = $2, payee = $3, amount = $4, description = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE voucher_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		voucher.VoucherID,
		voucher.Date,
		voucher.Payee,
		voucher.Amount,
		voucher.Description,
		voucher.LastUpdatedAt,
		voucher.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update voucher %s: %w", voucher.VoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s: %w", voucher.VoucherID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, userID string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE voucher_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, voucherID, status, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update voucher %s status: %w", voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s: %w", voucherID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxVoucherRepository) DeleteVoucher(ctx context.Context, voucherID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM vouchers WHERE voucher_id = $1;`, voucherID)
	if err != nil {
		return fmt.Errorf("failed to delete voucher %s: %w", voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s: %w", voucherID, apperrors.ErrNotFound)
	}
	return nil
}
