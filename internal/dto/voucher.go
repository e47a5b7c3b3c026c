package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVoucherRequest defines the data needed to create a voucher (in DRAFT).
type CreateVoucherRequest struct {
	VoucherType domain.VoucherType `json:"voucherType" binding:"required,oneof=PAYMENT RECEIPT JOURNAL"`
	Date        time.Time          `json:"date" binding:"required"`
	Payee       string             `json:"payee" binding:"required"`
	Amount      decimal.Decimal    `json:"amount" binding:"required"`
	Description string             `json:"description"`
}

// UpdateVoucherRequest defines the editable fields of a draft/approved voucher.
type UpdateVoucherRequest struct {
	Date        *time.Time       `json:"date"`
	Payee       *string          `json:"payee"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID     string               `json:"voucherID"`
	VoucherNumber string               `json:"voucherNumber"`
	VoucherType   domain.VoucherType   `json:"voucherType"`
	Date          time.Time            `json:"date"`
	Payee         string               `json:"payee"`
	Amount        decimal.Decimal      `json:"amount"`
	Description   string               `json:"description"`
	Status        domain.VoucherStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:     v.VoucherID,
		VoucherNumber: v.VoucherNumber,
		VoucherType:   v.VoucherType,
		Date:          v.Date,
		Payee:         v.Payee,
		Amount:        v.Amount,
		Description:   v.Description,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
		LastUpdatedAt: v.LastUpdatedAt,
		LastUpdatedBy: v.LastUpdatedBy,
	}
}

// ToListVoucherResponse converts a slice of vouchers to response DTOs.
func ToListVoucherResponse(vouchers []domain.Voucher) []VoucherResponse {
	res := make([]VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		res[i] = ToVoucherResponse(&v)
	}
	return res
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	Type   *domain.VoucherType   `form:"type" binding:"omitempty,oneof=PAYMENT RECEIPT JOURNAL"`
	Status *domain.VoucherStatus `form:"status" binding:"omitempty,oneof=DRAFT APPROVED POSTED"`
	Limit  int                   `form:"limit,default=20"`
	Offset int                   `form:"offset,default=0"`
}

// ListVouchersResponse wraps the list of vouchers.
type ListVouchersResponse struct {
	Vouchers []VoucherResponse `json:"vouchers"`
}
