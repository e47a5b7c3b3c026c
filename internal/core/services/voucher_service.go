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
)

var (
	// ErrInvalidVoucherType is returned for a type outside PAYMENT/RECEIPT/JOURNAL.
	ErrInvalidVoucherType = fmt.Errorf("invalid voucher type: %w", apperrors.ErrValidation)

	// ErrVoucherNotDraft is returned when approving a voucher that is not in DRAFT.
	ErrVoucherNotDraft = fmt.Errorf("voucher is not in draft status: %w", apperrors.ErrConflict)

	// ErrVoucherNotApproved is returned when posting a voucher that is not APPROVED.
	ErrVoucherNotApproved = fmt.Errorf("voucher is not approved: %w", apperrors.ErrConflict)

	// ErrVoucherPosted is returned when editing or deleting a posted voucher.
	ErrVoucherPosted = fmt.Errorf("posted vouchers are immutable: %w", apperrors.ErrConflict)

	// ErrNonPositiveAmount is returned for a voucher amount of zero or less.
	ErrNonPositiveAmount = fmt.Errorf("voucher amount must be positive: %w", apperrors.ErrValidation)
)

// voucherService implements VoucherSvcFacade. Voucher status moves strictly
// forward (DRAFT -> APPROVED -> POSTED); posting only flips the status, it
// does not emit ledger entries.
type voucherService struct {
	BaseService
	voucherRepo portsrepo.VoucherRepositoryFacade
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(repo portsrepo.VoucherRepositoryFacade) portssvc.VoucherSvcFacade {
	return &voucherService{voucherRepo: repo}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	if !domain.ValidVoucherType(req.VoucherType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVoucherType, req.VoucherType)
	}
	if !req.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	now := time.Now().UTC()
	voucher := domain.Voucher{
		VoucherID:   uuid.NewString(),
		VoucherType: req.VoucherType,
		Date:        req.Date,
		Payee:       req.Payee,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      domain.VoucherDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// The repository allocates the per-type sequence number and inserts the
	// voucher in one database transaction.
	if err := s.voucherRepo.SaveVoucher(ctx, &voucher); err != nil {
		s.LogError(ctx, err, "Failed to save voucher", slog.String("voucher_type", string(req.VoucherType)))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher created",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("voucher_number", voucher.VoucherNumber))
	return &voucher, nil
}

func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return s.voucherRepo.FindVoucherByID(ctx, voucherID)
}

func (s *voucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) ([]domain.Voucher, error) {
	return s.voucherRepo.ListVouchers(ctx, params.Type, params.Status, params.Limit, params.Offset)
}

func (s *voucherService) UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status == domain.VoucherPosted {
		return nil, fmt.Errorf("voucher %s: %w", voucherID, ErrVoucherPosted)
	}

	if req.Date != nil {
		voucher.Date = *req.Date
	}
	if req.Payee != nil {
		voucher.Payee = *req.Payee
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, ErrNonPositiveAmount
		}
		voucher.Amount = *req.Amount
	}
	if req.Description != nil {
		voucher.Description = *req.Description
	}
	voucher.LastUpdatedAt = time.Now().UTC()
	voucher.LastUpdatedBy = userID

	if err := s.voucherRepo.UpdateVoucher(ctx, *voucher); err != nil {
		s.LogError(ctx, err, "Failed to update voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher updated", slog.String("voucher_id", voucherID))
	return voucher, nil
}

func (s *voucherService) ApproveVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != domain.VoucherDraft {
		return nil, fmt.Errorf("voucher %s has status %s: %w", voucherID, voucher.Status, ErrVoucherNotDraft)
	}

	now := time.Now().UTC()
	if err := s.voucherRepo.UpdateVoucherStatus(ctx, voucherID, domain.VoucherApproved, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to approve voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	voucher.Status = domain.VoucherApproved
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = userID
	s.LogInfo(ctx, "Voucher approved", slog.String("voucher_number", voucher.VoucherNumber))
	return voucher, nil
}

func (s *voucherService) PostVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != domain.VoucherApproved {
		return nil, fmt.Errorf("voucher %s has status %s: %w", voucherID, voucher.Status, ErrVoucherNotApproved)
	}

	now := time.Now().UTC()
	if err := s.voucherRepo.UpdateVoucherStatus(ctx, voucherID, domain.VoucherPosted, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to post voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	voucher.Status = domain.VoucherPosted
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = userID
	s.LogInfo(ctx, "Voucher posted", slog.String("voucher_number", voucher.VoucherNumber))
	return voucher, nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, voucherID string, userID string) error {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return err
	}
	if voucher.Status == domain.VoucherPosted {
		return fmt.Errorf("voucher %s: %w", voucherID, ErrVoucherPosted)
	}

	if err := s.voucherRepo.DeleteVoucher(ctx, voucherID); err != nil {
		s.LogError(ctx, err, "Failed to delete voucher", slog.String("voucher_id", voucherID))
		return err
	}

	s.LogInfo(ctx, "Voucher deleted", slog.String("voucher_id", voucherID))
	return nil
}
