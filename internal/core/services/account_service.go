package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

var (
	// ErrDuplicateCode is returned when an account code collides with a
	// different account, active or not.
	ErrDuplicateCode = fmt.Errorf("account code already in use: %w", apperrors.ErrDuplicate)

	// ErrHasEntries is returned when deactivating an account that ledger
	// entries still reference. Deactivation is blocked, never cascaded.
	ErrHasEntries = fmt.Errorf("account has ledger entries: %w", apperrors.ErrConflict)

	// ErrParentCycle is returned when a parent assignment would make the
	// account its own ancestor.
	ErrParentCycle = fmt.Errorf("parent assignment would create a cycle: %w", apperrors.ErrValidation)

	// ErrInvalidAccountType is returned for a type outside the closed set.
	ErrInvalidAccountType = fmt.Errorf("invalid account type: %w", apperrors.ErrValidation)
)

// accountService implements the AccountSvcFacade interface.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !domain.ValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, req.AccountType)
	}

	// Codes are unique across active and inactive accounts.
	if existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", req.Code))
			return nil, fmt.Errorf("failed to check account code: %w", err)
		}
	} else if existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateCode, req.Code)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
			s.LogError(ctx, err, "Failed to resolve parent account", slog.String("parent_id", parentID))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsCash:          req.IsCash,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.ParentAccountID != "" {
		// parent_name is display-only; a missing parent is not an error here
		if parent, err := s.accountRepo.FindAccountByID(ctx, account.ParentAccountID); err == nil {
			account.ParentName = parent.Name
		}
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, params.Limit, params.Offset, params.IncludeInactive)
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != account.Code {
		if existing, err := s.accountRepo.FindAccountByCode(ctx, *req.Code); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to check account code: %w", err)
			}
		} else if existing != nil && existing.AccountID != accountID {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCode, *req.Code)
		}
		account.Code = *req.Code
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		if !domain.ValidAccountType(*req.AccountType) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, *req.AccountType)
		}
		account.AccountType = *req.AccountType
	}
	if req.ParentAccountID != nil {
		newParent := *req.ParentAccountID
		if newParent != "" {
			if err := s.checkParentCycle(ctx, accountID, newParent); err != nil {
				return nil, err
			}
		}
		account.ParentAccountID = newParent
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsCash != nil {
		account.IsCash = *req.IsCash
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// checkParentCycle walks the ancestor chain of the proposed parent and
// rejects the assignment if it passes through the account being reparented.
func (s *accountService) checkParentCycle(ctx context.Context, accountID, newParentID string) error {
	if newParentID == accountID {
		return ErrParentCycle
	}
	current := newParentID
	for current != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("invalid parent account %s: %w", current, err)
			}
			return err
		}
		if parent.AccountID == accountID {
			return ErrParentCycle
		}
		current = parent.ParentAccountID
	}
	return nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	referenced, err := s.accountRepo.HasEntries(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account entry references", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check account references: %w", err)
	}
	if referenced {
		return fmt.Errorf("account %s: %w", accountID, ErrHasEntries)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
