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
	// ErrDuplicateItemCode is returned when an item code collides with a
	// different item.
	ErrDuplicateItemCode = fmt.Errorf("item code already in use: %w", apperrors.ErrDuplicate)

	// ErrInsufficientStock is returned when an OUT movement would drive the
	// item's stock negative.
	ErrInsufficientStock = fmt.Errorf("insufficient stock: %w", apperrors.ErrConflict)

	// ErrInvalidMovementType is returned for a type outside IN/OUT/ADJUSTMENT.
	ErrInvalidMovementType = fmt.Errorf("invalid movement type: %w", apperrors.ErrValidation)

	// ErrNegativeQuantity is returned for a negative movement quantity.
	ErrNegativeQuantity = fmt.Errorf("movement quantity must not be negative: %w", apperrors.ErrValidation)
)

// inventoryService implements InventorySvcFacade: a single-sided analogue of
// the posting engine where movements mutate a running stock quantity.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(repo portsrepo.InventoryRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: repo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateItemRequest, creatorUserID string) (*domain.Item, error) {
	if existing, err := s.inventoryRepo.FindItemByCode(ctx, req.Code); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check item code: %w", err)
		}
	} else if existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateItemCode, req.Code)
	}

	if req.OpeningStock.IsNegative() || req.MinimumStock.IsNegative() {
		return nil, fmt.Errorf("stock levels must not be negative: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.Item{
		ItemID:       uuid.NewString(),
		Code:         req.Code,
		Name:         req.Name,
		Unit:         req.Unit,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		CurrentStock: req.OpeningStock,
		MinimumStock: req.MinimumStock,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save item", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Item created", slog.String("item_id", item.ItemID), slog.String("code", item.Code))
	return &item, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.inventoryRepo.FindItemByID(ctx, itemID)
}

func (s *inventoryService) ListItems(ctx context.Context, limit, offset int, includeInactive bool) ([]domain.Item, error) {
	return s.inventoryRepo.ListItems(ctx, limit, offset, includeInactive)
}

func (s *inventoryService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != item.Code {
		if existing, err := s.inventoryRepo.FindItemByCode(ctx, *req.Code); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to check item code: %w", err)
			}
		} else if existing != nil && existing.ItemID != itemID {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateItemCode, *req.Code)
		}
		item.Code = *req.Code
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.CostPrice != nil {
		item.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		item.SellingPrice = *req.SellingPrice
	}
	if req.MinimumStock != nil {
		item.MinimumStock = *req.MinimumStock
	}
	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = userID

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update item", slog.String("item_id", itemID))
		return nil, err
	}

	s.LogInfo(ctx, "Item updated", slog.String("item_id", itemID))
	return item, nil
}

func (s *inventoryService) DeactivateItem(ctx context.Context, itemID string, userID string) error {
	if _, err := s.inventoryRepo.FindItemByID(ctx, itemID); err != nil {
		return err
	}
	if err := s.inventoryRepo.DeactivateItem(ctx, itemID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate item", slog.String("item_id", itemID))
		return err
	}
	s.LogInfo(ctx, "Item deactivated", slog.String("item_id", itemID))
	return nil
}

// checkMovement validates a movement against the stock level read at
// validation time. The stock change itself is computed by the repository
// under the item row lock; this check only classifies the movement type and
// gives OUT callers an early insufficient-stock error.
func checkMovement(movementType domain.MovementType, quantity, currentStock decimal.Decimal) error {
	if !domain.ValidMovementType(movementType) {
		return fmt.Errorf("%w: %q", ErrInvalidMovementType, movementType)
	}
	if movementType == domain.MovementOut && currentStock.Sub(quantity).IsNegative() {
		return fmt.Errorf("have %s, need %s: %w", currentStock, quantity, ErrInsufficientStock)
	}
	return nil
}

func (s *inventoryService) RecordMovement(ctx context.Context, itemID string, req dto.RecordMovementRequest, userID string) (*domain.StockMovement, error) {
	if req.Quantity.IsNegative() {
		return nil, ErrNegativeQuantity
	}

	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := checkMovement(req.MovementType, req.Quantity, item.CurrentStock); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movement := domain.StockMovement{
		MovementID:   uuid.NewString(),
		ItemID:       itemID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		Reference:    req.Reference,
		Date:         req.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// The repository derives the applied stock change from the value it
	// reads under the item row lock; the check above only gives callers an
	// early error.
	if err := s.inventoryRepo.SaveMovement(ctx, movement); err != nil {
		s.LogError(ctx, err, "Failed to record movement", slog.String("item_id", itemID))
		return nil, err
	}

	s.LogInfo(ctx, "Stock movement recorded",
		slog.String("item_id", itemID),
		slog.String("movement_type", string(req.MovementType)),
		slog.String("quantity", req.Quantity.String()))
	return &movement, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, itemID string, limit, offset int) ([]domain.StockMovement, error) {
	if _, err := s.inventoryRepo.FindItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListMovementsByItem(ctx, itemID, limit, offset)
}

func (s *inventoryService) LowStock(ctx context.Context) ([]domain.Item, error) {
	return s.inventoryRepo.ListLowStock(ctx)
}

func (s *inventoryService) Valuation(ctx context.Context) ([]domain.ItemValuation, error) {
	return s.inventoryRepo.GetValuation(ctx)
}
