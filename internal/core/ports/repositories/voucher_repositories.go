package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// VoucherReader defines read operations for vouchers.
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher by id.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves a paginated voucher list, optionally filtered by
	// type and status.
	ListVouchers(ctx context.Context, voucherType *domain.VoucherType, status *domain.VoucherStatus, limit, offset int) ([]domain.Voucher, error)
}

// VoucherWriter defines write operations for vouchers.
type VoucherWriter interface {
	// SaveVoucher allocates the next number for the voucher's type from its
	// dedicated counter and inserts the voucher in one database transaction.
	// The allocated number is written back into voucher.VoucherNumber.
	SaveVoucher(ctx context.Context, voucher *domain.Voucher) error

	// UpdateVoucher updates a voucher's editable fields.
	UpdateVoucher(ctx context.Context, voucher domain.Voucher) error

	// UpdateVoucherStatus advances a voucher's status.
	UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, userID string, now time.Time) error

	// DeleteVoucher removes a voucher.
	DeleteVoucher(ctx context.Context, voucherID string) error
}

// VoucherRepositoryFacade combines voucher reader and writer interfaces.
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
