package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// InventoryReader defines read operations for items and stock movements.
type InventoryReader interface {
	// FindItemByID retrieves an item by id.
	FindItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// FindItemByCode retrieves an item by business code, regardless of
	// active status.
	FindItemByCode(ctx context.Context, code string) (*domain.Item, error)

	// ListItems retrieves a paginated item list.
	ListItems(ctx context.Context, limit, offset int, includeInactive bool) ([]domain.Item, error)

	// ListMovementsByItem retrieves the movements of one item in date then
	// creation order.
	ListMovementsByItem(ctx context.Context, itemID string, limit, offset int) ([]domain.StockMovement, error)

	// ListLowStock returns active items with current_stock <= minimum_stock,
	// most deficient first.
	ListLowStock(ctx context.Context) ([]domain.Item, error)

	// GetValuation returns valuation rows for active items with positive stock.
	GetValuation(ctx context.Context) ([]domain.ItemValuation, error)
}

// InventoryWriter defines write operations for items and stock movements.
type InventoryWriter interface {
	// SaveItem persists a new item.
	SaveItem(ctx context.Context, item domain.Item) error

	// UpdateItem updates an existing item's details.
	UpdateItem(ctx context.Context, item domain.Item) error

	// DeactivateItem marks an item as inactive.
	DeactivateItem(ctx context.Context, itemID string, userID string, now time.Time) error

	// SaveMovement inserts the movement row and shifts the item's current
	// stock in one database transaction. The stock change is derived from
	// the movement type and the stock value read under the item row lock,
	// never from an earlier unlocked read. It fails with
	// apperrors.ErrConflict if the resulting stock would be negative.
	SaveMovement(ctx context.Context, movement domain.StockMovement) error
}

// InventoryRepositoryFacade combines inventory reader and writer interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
