package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType determines the numbering prefix and business meaning of a voucher.
type VoucherType string

const (
	VoucherPayment VoucherType = "PAYMENT"
	VoucherReceipt VoucherType = "RECEIPT"
	VoucherJournal VoucherType = "JOURNAL"
)

// NumberPrefix returns the voucher-number prefix for the type (PV/RV/JV).
func (t VoucherType) NumberPrefix() string {
	switch t {
	case VoucherPayment:
		return "PV"
	case VoucherReceipt:
		return "RV"
	case VoucherJournal:
		return "JV"
	}
	return ""
}

// ValidVoucherType reports whether t is a known voucher type.
func ValidVoucherType(t VoucherType) bool {
	return t.NumberPrefix() != ""
}

// VoucherStatus is the lifecycle state of a voucher. Transitions move
// strictly forward: DRAFT -> APPROVED -> POSTED, no skipping, no regression.
type VoucherStatus string

const (
	VoucherDraft    VoucherStatus = "DRAFT"
	VoucherApproved VoucherStatus = "APPROVED"
	VoucherPosted   VoucherStatus = "POSTED"
)

// Voucher is an ancillary document with its own per-type number sequence.
// Posting a voucher only advances its status; it does not emit ledger entries.
type Voucher struct {
	VoucherID     string          `json:"voucherID"`
	VoucherNumber string          `json:"voucherNumber"` // PV/RV/JV + 6-digit sequence
	VoucherType   VoucherType     `json:"voucherType"`
	Date          time.Time       `json:"date"`
	Payee         string          `json:"payee"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Status        VoucherStatus   `json:"status"`
	AuditFields
}
