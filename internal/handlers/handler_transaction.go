package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// transactionHandler handles HTTP requests for the posting engine.
type transactionHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ps portssvc.PostingSvcFacade) *transactionHandler {
	return &transactionHandler{postingService: ps}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newTransactionHandler(postingService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.postTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.GET("", h.listTransactions)
		transactions.PUT("/:id", h.amendTransaction)
		transactions.DELETE("/:id", h.voidTransaction)
	}
}

// postTransaction godoc
// @Summary Post a transaction
// @Description Validates and atomically posts a balanced set of debit/credit entries
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.PostTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Unbalanced entries or validation error"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.postingService.PostTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "Failed to post transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction with its entries
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	txn, err := h.postingService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves transactions newest first with token pagination
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.postingService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// amendTransaction godoc
// @Summary Amend a transaction
// @Description Replaces a transaction's header and entries, atomically reversing the old balance effect
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.AmendTransactionRequest true "Replacement details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Unbalanced entries or validation error"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) amendTransaction(c *gin.Context) {
	var req dto.AmendTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.postingService.AmendTransaction(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to amend transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// voidTransaction godoc
// @Summary Void a transaction
// @Description Reverses a transaction's balance effect and removes it with its entries
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 204 "Transaction voided"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.postingService.VoidTransaction(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to void transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
