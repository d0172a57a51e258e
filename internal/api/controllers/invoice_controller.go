package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invisifeed/internal/models/request_models"
	"invisifeed/internal/services"
	"invisifeed/pkg/utils"
)

type InvoiceController struct {
	invoiceService services.InvoiceServiceInterface
}

func NewInvoiceController(invoiceService services.InvoiceServiceInterface) *InvoiceController {
	return &InvoiceController{
		invoiceService: invoiceService,
	}
}

// CreateInvoice godoc
// @Summary Generate an invoice PDF with an embedded feedback QR code
// @Description Builds the invoice, optionally attaches a coupon, renders the PDF and uploads it
// @Tags Invoice
// @Accept json
// @Produce json
// @Param request body request_models.CreateInvoiceRequest true "Invoice details"
// @Success 200 {object} response_models.CreateInvoiceResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Security BearerAuth
// @Router /invoices/create [post]
func (i *InvoiceController) CreateInvoice(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	var req request_models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.AddCoupon && req.Coupon == nil {
		utils.RespondError(c, http.StatusBadRequest, "Coupon details are required when add_coupon is set")
		return
	}

	resp, err := i.invoiceService.CreateInvoice(c.Request.Context(), ownerID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Invoice generated successfully")
}

// GetUploadCount godoc
// @Summary Get today's invoice generation quota usage
// @Tags Invoice
// @Produce json
// @Success 200 {object} response_models.UploadCountResponse
// @Security BearerAuth
// @Router /invoices/upload-count [get]
func (i *InvoiceController) GetUploadCount(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	resp, err := i.invoiceService.GetUploadCount(c.Request.Context(), ownerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Upload count fetched successfully")
}

// ListInvoices godoc
// @Summary List the authenticated owner's invoices
// @Tags Invoice
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {array} response_models.InvoiceSummary
// @Security BearerAuth
// @Router /invoices [get]
func (i *InvoiceController) ListInvoices(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	invoices, err := i.invoiceService.ListInvoices(c.Request.Context(), ownerID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, invoices, "Invoices fetched successfully")
}

// DeleteCoupon godoc
// @Summary Invalidate the coupon attached to an invoice
// @Description Marks the coupon used so it can never be redeemed; irreversible
// @Tags Invoice
// @Produce json
// @Param invoiceNumber path string true "Invoice number"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /invoices/{invoiceNumber}/coupon [delete]
func (i *InvoiceController) DeleteCoupon(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	invoiceNumber := c.Param("invoiceNumber")
	if invoiceNumber == "" {
		utils.RespondError(c, http.StatusBadRequest, "Invoice number is required")
		return
	}

	if err := i.invoiceService.DeleteCoupon(c.Request.Context(), ownerID, invoiceNumber); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Coupon invalidated")
}

// ResetData godoc
// @Summary Delete all invoices, feedback and coupons for the owner
// @Description Clears business data and counters; coupon ordinals are preserved
// @Tags Invoice
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /invoices/reset [post]
func (i *InvoiceController) ResetData(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	if err := i.invoiceService.ResetData(c.Request.Context(), ownerID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account data reset")
}
