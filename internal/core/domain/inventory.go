package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Item is an inventory item with a denormalized running stock quantity.
// CurrentStock always equals the net effect of all stock movements applied
// to the item in application order.
type Item struct {
	ItemID       string          `json:"itemID"`
	Code         string          `json:"code"` // unique business key
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
	// MovementAdjustment sets the submitted quantity as the new absolute
	// stock level; the stored delta is quantity minus stock-before.
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// ValidMovementType reports whether t is a known movement type.
func ValidMovementType(t MovementType) bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

// NextStock returns the stock level after applying a movement to the level
// the caller holds under the item row lock. ADJUSTMENT returns the quantity
// itself: the submitted quantity is the new absolute level no matter what an
// earlier unlocked read saw.
func NextStock(t MovementType, stock, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case MovementIn:
		return stock.Add(quantity), nil
	case MovementOut:
		return stock.Sub(quantity), nil
	case MovementAdjustment:
		return quantity, nil
	}
	return decimal.Decimal{}, fmt.Errorf("unknown movement type %q", t)
}

// StockMovement is one recorded change to an item's stock quantity.
type StockMovement struct {
	MovementID   string           `json:"movementID"`
	ItemID       string           `json:"itemID"`
	MovementType MovementType     `json:"movementType"`
	Quantity     decimal.Decimal  `json:"quantity"` // as submitted by the caller
	UnitCost     *decimal.Decimal `json:"unitCost,omitempty"`
	Reference    string           `json:"reference"`
	Date         time.Time        `json:"date"`
	AuditFields
}

// ItemValuation is one row of the inventory valuation report.
type ItemValuation struct {
	ItemID       string          `json:"itemID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	CostValue    decimal.Decimal `json:"costValue"`    // current_stock * cost_price
	SellingValue decimal.Decimal `json:"sellingValue"` // current_stock * selling_price
}
