package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest defines the data needed to create an inventory item.
type CreateItemRequest struct {
	Code         string          `json:"code" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	OpeningStock decimal.Decimal `json:"openingStock"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
}

// UpdateItemRequest defines the editable fields of an item.
type UpdateItemRequest struct {
	Code         *string          `json:"code"`
	Name         *string          `json:"name"`
	Unit         *string          `json:"unit"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	MinimumStock *decimal.Decimal `json:"minimumStock"`
}

// ItemResponse defines the data returned for an item.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinimumStock  decimal.Decimal `json:"minimumStock"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToItemResponse converts a domain.Item to ItemResponse.
func ToItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:        item.ItemID,
		Code:          item.Code,
		Name:          item.Name,
		Unit:          item.Unit,
		CostPrice:     item.CostPrice,
		SellingPrice:  item.SellingPrice,
		CurrentStock:  item.CurrentStock,
		MinimumStock:  item.MinimumStock,
		IsActive:      item.IsActive,
		CreatedAt:     item.CreatedAt,
		LastUpdatedAt: item.LastUpdatedAt,
	}
}

// ToListItemResponse converts a slice of items to response DTOs.
func ToListItemResponse(items []domain.Item) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i, item := range items {
		res[i] = ToItemResponse(&item)
	}
	return res
}

// RecordMovementRequest defines a stock movement submission. For ADJUSTMENT
// movements Quantity is the new absolute stock level, not an increment.
type RecordMovementRequest struct {
	MovementType domain.MovementType `json:"movementType" binding:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity     decimal.Decimal     `json:"quantity" binding:"required"`
	UnitCost     *decimal.Decimal    `json:"unitCost"`
	Reference    string              `json:"reference"`
	Date         time.Time           `json:"date" binding:"required"`
}

// MovementResponse defines the data returned for a stock movement.
type MovementResponse struct {
	MovementID   string              `json:"movementID"`
	ItemID       string              `json:"itemID"`
	MovementType domain.MovementType `json:"movementType"`
	Quantity     decimal.Decimal     `json:"quantity"`
	UnitCost     *decimal.Decimal    `json:"unitCost,omitempty"`
	Reference    string              `json:"reference"`
	Date         time.Time           `json:"date"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

// ToMovementResponse converts a domain.StockMovement to MovementResponse.
func ToMovementResponse(m *domain.StockMovement) MovementResponse {
	return MovementResponse{
		MovementID:   m.MovementID,
		ItemID:       m.ItemID,
		MovementType: m.MovementType,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		Reference:    m.Reference,
		Date:         m.Date,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

// ToListMovementResponse converts a slice of movements to response DTOs.
func ToListMovementResponse(movements []domain.StockMovement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i, m := range movements {
		res[i] = ToMovementResponse(&m)
	}
	return res
}

// ValuationRowResponse is one row of the inventory valuation report.
type ValuationRowResponse struct {
	ItemID       string          `json:"itemID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	CostValue    decimal.Decimal `json:"costValue"`
	SellingValue decimal.Decimal `json:"sellingValue"`
}

// ValuationResponse is the inventory valuation report with grand totals.
type ValuationResponse struct {
	Items             []ValuationRowResponse `json:"items"`
	TotalCostValue    decimal.Decimal        `json:"totalCostValue"`
	TotalSellingValue decimal.Decimal        `json:"totalSellingValue"`
}

// ToValuationResponse assembles the valuation report from domain rows.
func ToValuationResponse(rows []domain.ItemValuation) ValuationResponse {
	resp := ValuationResponse{Items: make([]ValuationRowResponse, len(rows))}
	for i, r := range rows {
		resp.Items[i] = ValuationRowResponse{
			ItemID:       r.ItemID,
			Code:         r.Code,
			Name:         r.Name,
			CurrentStock: r.CurrentStock,
			CostValue:    r.CostValue,
			SellingValue: r.SellingValue,
		}
		resp.TotalCostValue = resp.TotalCostValue.Add(r.CostValue)
		resp.TotalSellingValue = resp.TotalSellingValue.Add(r.SellingValue)
	}
	return resp
}
