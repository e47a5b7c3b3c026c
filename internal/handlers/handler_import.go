package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
)

// importHandler handles CSV import uploads.
type importHandler struct {
	importService portssvc.ImportSvcFacade
}

// registerImportRoutes registers routes related to CSV imports.
func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvcFacade) {
	h := &importHandler{importService: importService}

	imports := rg.Group("/import")
	{
		imports.POST("/accounts", h.importAccounts)
		imports.POST("/transactions", h.importTransactions)
	}
}

// csvBody returns the uploaded CSV: the "file" form field when the request
// is multipart, the raw body otherwise.
func csvBody(c *gin.Context) (io.ReadCloser, bool) {
	file, _, err := c.Request.FormFile("file")
	if err == nil {
		return file, true
	}
	if c.Request.Body == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing CSV payload"})
		return nil, false
	}
	return c.Request.Body, true
}

// importAccounts godoc
// @Summary Import accounts from CSV
// @Description Reads code,name,type,parent_code rows; invalid rows are skipped and reported
// @Tags import
// @Accept  mpfd
// @Produce  json
// @Param   file formData file true "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} map[string]string "Missing or malformed CSV"
// @Security BearerAuth
// @Router /import/accounts [post]
func (h *importHandler) importAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	body, ok := csvBody(c)
	if !ok {
		return
	}
	defer body.Close()

	result, err := h.importService.ImportAccounts(c.Request.Context(), body, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to import accounts")
		return
	}
	c.JSON(http.StatusOK, result)
}

// importTransactions godoc
// @Summary Import transactions from CSV
// @Description Reads grouped entry rows; groups that fail validation are skipped whole
// @Tags import
// @Accept  mpfd
// @Produce  json
// @Param   file formData file true "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} map[string]string "Missing or malformed CSV"
// @Security BearerAuth
// @Router /import/transactions [post]
func (h *importHandler) importTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	body, ok := csvBody(c)
	if !ok {
		return
	}
	defer body.Close()

	result, err := h.importService.ImportTransactions(c.Request.Context(), body, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to import transactions")
		return
	}
	c.JSON(http.StatusOK, result)
}
