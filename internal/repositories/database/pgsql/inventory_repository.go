package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

const itemColumns = `item_id, code, name, unit, cost_price, selling_price, current_stock, minimum_stock, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func scanItem(row rowScanner) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ItemID,
		&item.Code,
		&item.Name,
		&item.Unit,
		&item.CostPrice,
		&item.SellingPrice,
		&item.CurrentStock,
		&item.MinimumStock,
		&item.IsActive,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	return item, err
}

func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.Code,
		item.Name,
		item.Unit,
		item.CostPrice,
		item.SellingPrice,
		item.CurrentStock,
		item.MinimumStock,
		item.IsActive,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: item code %s already exists", apperrors.ErrDuplicate, item.Code)
		}
		return fmt.Errorf("failed to save item %s: %w", item.ItemID, err)
	}
	return nil
}

func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1;`
	item, err := scanItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", itemID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}
	return &item, nil
}

func (r *PgxInventoryRepository) FindItemByCode(ctx context.Context, code string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE code = $1;`
	item, err := scanItem(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item code %s: %w", code, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find item by code %s: %w", code, err)
	}
	return &item, nil
}

func (r *PgxInventoryRepository) ListItems(ctx context.Context, limit, offset int, includeInactive bool) ([]domain.Item, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + itemColumns + ` FROM items`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	query := `
		UPDATE items
		SET code = $2, name = $3, unit = $4, cost_price = $5, selling_price = $6,
		    minimum_stock = $7, last_updated_at = $8, last_updated_by = $9
		WHERE item_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.Code,
		item.Name,
		item.Unit,
		item.CostPrice,
		item.SellingPrice,
		item.MinimumStock,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: item code %s already exists", apperrors.ErrDuplicate, item.Code)
		}
		return fmt.Errorf("failed to update item %s: %w", item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", item.ItemID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxInventoryRepository) DeactivateItem(ctx context.Context, itemID string, userID string, now time.Time) error {
	query := `
		UPDATE items
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE item_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, itemID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", itemID, apperrors.ErrNotFound)
	}
	return nil
}

// SaveMovement inserts the movement and shifts the item's stock in one
// database transaction. The item row is locked first and the new stock level
// is computed from the locked value, so an ADJUSTMENT lands on its absolute
// target and concurrent movements cannot overdraw the item.
func (r *PgxInventoryRepository) SaveMovement(ctx context.Context, movement domain.StockMovement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var currentStock decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT current_stock FROM items WHERE item_id = $1 FOR UPDATE;`, movement.ItemID).Scan(&currentStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("item %s: %w", movement.ItemID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to lock item %s: %w", movement.ItemID, err)
	}

	newStock, err := domain.NextStock(movement.MovementType, currentStock, movement.Quantity)
	if err != nil {
		return fmt.Errorf("failed to apply movement %s: %w", movement.MovementID, err)
	}
	if newStock.IsNegative() {
		return fmt.Errorf("stock for item %s would become %s: %w", movement.ItemID, newStock, apperrors.ErrConflict)
	}

	var unitCost sql.NullString
	if movement.UnitCost != nil {
		unitCost = sql.NullString{String: movement.UnitCost.String(), Valid: true}
	}

	insertQuery := `
		INSERT INTO stock_movements (movement_id, item_id, movement_type, quantity, unit_cost, reference, date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		movement.MovementID,
		movement.ItemID,
		movement.MovementType,
		movement.Quantity,
		unitCost,
		movement.Reference,
		movement.Date,
		movement.CreatedAt,
		movement.CreatedBy,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert movement %s: %w", movement.MovementID, err)
	}

	updateQuery := `
		UPDATE items
		SET current_stock = $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, movement.ItemID, newStock, movement.CreatedAt, movement.CreatedBy); err != nil {
		return fmt.Errorf("failed to update stock for item %s: %w", movement.ItemID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxInventoryRepository) ListMovementsByItem(ctx context.Context, itemID string, limit, offset int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT movement_id, item_id, movement_type, quantity, unit_cost, reference, date, created_at, created_by, last_updated_at, last_updated_by
		FROM stock_movements
		WHERE item_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for item %s: %w", itemID, err)
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var (
			m        domain.StockMovement
			unitCost sql.NullString
		)
		if err := rows.Scan(&m.MovementID, &m.ItemID, &m.MovementType, &m.Quantity, &unitCost, &m.Reference, &m.Date, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		if unitCost.Valid {
			cost, err := decimal.NewFromString(unitCost.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse unit cost: %w", err)
			}
			m.UnitCost = &cost
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *PgxInventoryRepository) ListLowStock(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE is_active = TRUE AND current_stock <= minimum_stock
		ORDER BY (minimum_stock - current_stock) DESC, code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan low stock row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PgxInventoryRepository) GetValuation(ctx context.Context) ([]domain.ItemValuation, error) {
	query := `
		SELECT item_id, code, name, current_stock,
		       current_stock * cost_price AS cost_value,
		       current_stock * selling_price AS selling_value
		FROM items
		WHERE is_active = TRUE AND current_stock > 0
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory valuation: %w", err)
	}
	defer rows.Close()

	var result []domain.ItemValuation
	for rows.Next() {
		var v domain.ItemValuation
		if err := rows.Scan(&v.ItemID, &v.Code, &v.Name, &v.CurrentStock, &v.CostValue, &v.SellingValue); err != nil {
			return nil, fmt.Errorf("failed to scan valuation row: %w", err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
