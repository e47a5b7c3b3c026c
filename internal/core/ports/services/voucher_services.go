package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// VoucherSvcFacade manages voucher documents and their forward-only status
// machine (DRAFT -> APPROVED -> POSTED).
type VoucherSvcFacade interface {
	// CreateVoucher creates a new voucher in DRAFT with an allocated number.
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error)

	// GetVoucherByID retrieves a voucher by id.
	GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves a filtered, paginated voucher list.
	ListVouchers(ctx context.Context, params dto.ListVouchersParams) ([]domain.Voucher, error)

	// UpdateVoucher edits a voucher. Posted vouchers are immutable.
	UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)

	// ApproveVoucher moves DRAFT -> APPROVED.
	ApproveVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error)

	// PostVoucher moves APPROVED -> POSTED.
	PostVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error)

	// DeleteVoucher removes a voucher. Posted vouchers cannot be deleted.
	DeleteVoucher(ctx context.Context, voucherID string, userID string) error
}
