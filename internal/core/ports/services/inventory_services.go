package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// InventorySvcFacade manages inventory items and the stock movement ledger.
type InventorySvcFacade interface {
	// CreateItem creates a new inventory item.
	CreateItem(ctx context.Context, req dto.CreateItemRequest, creatorUserID string) (*domain.Item, error)

	// GetItemByID retrieves an item by id.
	GetItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// ListItems retrieves a paginated item list.
	ListItems(ctx context.Context, limit, offset int, includeInactive bool) ([]domain.Item, error)

	// UpdateItem updates an item's details.
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error)

	// DeactivateItem soft-deletes an item.
	DeactivateItem(ctx context.Context, itemID string, userID string) error

	// RecordMovement atomically records a stock movement and updates the
	// item's running stock.
	RecordMovement(ctx context.Context, itemID string, req dto.RecordMovementRequest, userID string) (*domain.StockMovement, error)

	// ListMovements retrieves the movements of one item.
	ListMovements(ctx context.Context, itemID string, limit, offset int) ([]domain.StockMovement, error)

	// LowStock returns active items at or below their minimum stock,
	// most deficient first.
	LowStock(ctx context.Context) ([]domain.Item, error)

	// Valuation reports stock value at cost and selling price with totals.
	Valuation(ctx context.Context) ([]domain.ItemValuation, error)
}
