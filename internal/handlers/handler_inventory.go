package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// inventoryHandler handles HTTP requests for items and stock movements.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes related to inventory.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("/:id", h.getItem)
		items.GET("", h.listItems)
		items.PUT("/:id", h.updateItem)
		items.DELETE("/:id", h.deleteItem)
		items.POST("/:id/movements", h.recordMovement)
		items.GET("/:id/movements", h.listMovements)
	}

	inventory := rg.Group("/inventory")
	{
		inventory.GET("/low-stock", h.lowStock)
		inventory.GET("/valuation", h.valuation)
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// createItem godoc
// @Summary Create an inventory item
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 409 {object} map[string]string "Duplicate item code"
// @Security BearerAuth
// @Router /items [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// getItem godoc
// @Summary Get an item
// @Tags inventory
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	item, err := h.inventoryService.GetItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// listItems godoc
// @Summary List items
// @Tags inventory
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Param   includeInactive query bool false "Include deactivated items"
// @Success 200 {array} dto.ItemResponse
// @Security BearerAuth
// @Router /items [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)
	includeInactive := c.Query("includeInactive") == "true"

	items, err := h.inventoryService.ListItems(c.Request.Context(), limit, offset, includeInactive)
	if err != nil {
		respondServiceError(c, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, dto.ToListItemResponse(items))
}

// updateItem godoc
// @Summary Update an item
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   item body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id} [put]
func (h *inventoryHandler) updateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// deleteItem godoc
// @Summary Deactivate an item
// @Tags inventory
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 204 "Item deactivated"
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *inventoryHandler) deleteItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.inventoryService.DeactivateItem(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate item")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordMovement godoc
// @Summary Record a stock movement
// @Description Records an IN/OUT/ADJUSTMENT movement and updates the item's stock atomically
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   movement body dto.RecordMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementResponse
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Security BearerAuth
// @Router /items/{id}/movements [post]
func (h *inventoryHandler) recordMovement(c *gin.Context) {
	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	movement, err := h.inventoryService.RecordMovement(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record movement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List stock movements
// @Tags inventory
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.MovementResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id}/movements [get]
func (h *inventoryHandler) listMovements(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	movements, err := h.inventoryService.ListMovements(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementResponse(movements))
}

// lowStock godoc
// @Summary Low stock items
// @Description Active items at or below their minimum stock, most deficient first
// @Tags inventory
// @Produce  json
// @Success 200 {array} dto.ItemResponse
// @Security BearerAuth
// @Router /inventory/low-stock [get]
func (h *inventoryHandler) lowStock(c *gin.Context) {
	items, err := h.inventoryService.LowStock(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list low stock items")
		return
	}
	c.JSON(http.StatusOK, dto.ToListItemResponse(items))
}

// valuation godoc
// @Summary Inventory valuation
// @Description Stock value at cost and selling price with grand totals
// @Tags inventory
// @Produce  json
// @Success 200 {object} dto.ValuationResponse
// @Security BearerAuth
// @Router /inventory/valuation [get]
func (h *inventoryHandler) valuation(c *gin.Context) {
	rows, err := h.inventoryService.Valuation(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to generate valuation")
		return
	}
	c.JSON(http.StatusOK, dto.ToValuationResponse(rows))
}
