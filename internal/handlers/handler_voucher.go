package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// voucherHandler handles HTTP requests related to vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: vs}
}

// registerVoucherRoutes registers routes related to vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("/:id", h.getVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.PUT("/:id", h.updateVoucher)
		vouchers.POST("/:id/approve", h.approveVoucher)
		vouchers.POST("/:id/post", h.postVoucher)
		vouchers.DELETE("/:id", h.deleteVoucher)
	}
}

// createVoucher godoc
// @Summary Create a voucher
// @Description Creates a voucher in DRAFT with a number from its type's sequence
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err, "Failed to create voucher")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// getVoucher godoc
// @Summary Get a voucher
// @Tags vouchers
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Security BearerAuth
// @Router /vouchers/{id} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Description Retrieves vouchers, optionally filtered by type and status
// @Tags vouchers
// @Produce  json
// @Param   type query string false "PAYMENT, RECEIPT, or JOURNAL"
// @Param   status query string false "DRAFT, APPROVED, or POSTED"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListVouchersResponse
// @Security BearerAuth
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	vouchers, err := h.voucherService.ListVouchers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list vouchers")
		return
	}
	c.JSON(http.StatusOK, dto.ListVouchersResponse{Vouchers: dto.ToListVoucherResponse(vouchers)})
}

// updateVoucher godoc
// @Summary Update a voucher
// @Description Edits a voucher; posted vouchers are immutable
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Param   voucher body dto.UpdateVoucherRequest true "Fields to update"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher already posted"
// @Security BearerAuth
// @Router /vouchers/{id} [put]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// approveVoucher godoc
// @Summary Approve a voucher
// @Description Moves a DRAFT voucher to APPROVED
// @Tags vouchers
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 409 {object} map[string]string "Voucher is not in draft status"
// @Security BearerAuth
// @Router /vouchers/{id}/approve [post]
func (h *voucherHandler) approveVoucher(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.ApproveVoucher(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to approve voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// postVoucher godoc
// @Summary Post a voucher
// @Description Moves an APPROVED voucher to POSTED; posted vouchers are immutable
// @Tags vouchers
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 409 {object} map[string]string "Voucher is not approved"
// @Security BearerAuth
// @Router /vouchers/{id}/post [post]
func (h *voucherHandler) postVoucher(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	voucher, err := h.voucherService.PostVoucher(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// deleteVoucher godoc
// @Summary Delete a voucher
// @Description Removes a voucher; posted vouchers cannot be deleted
// @Tags vouchers
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Success 204 "Voucher deleted"
// @Failure 409 {object} map[string]string "Voucher already posted"
// @Security BearerAuth
// @Router /vouchers/{id} [delete]
func (h *voucherHandler) deleteVoucher(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete voucher")
		return
	}
	c.Status(http.StatusNoContent)
}
