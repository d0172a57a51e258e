package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invisifeed/internal/models/request_models"
	"invisifeed/internal/services"
	"invisifeed/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// CreateCheckout godoc
// @Summary Create a payOS checkout link for a plan upgrade
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body request_models.CreateCheckoutRequest true "Plan code"
// @Success 200 {object} response_models.CreateCheckoutResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	ownerID, err := uuid.Parse(c.GetString("owner_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid owner identity")
		return
	}

	var req request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := p.paymentService.CreateCheckoutForPlan(c.Request.Context(), ownerID, req.PlanCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Checkout link created")
}

// Webhook godoc
// @Summary payOS payment webhook
// @Description Verifies the gateway signature and activates the purchased plan
// @Tags Payment
// @Accept json
// @Produce json
// @Router /payments/webhook [post]
func (p *PaymentController) Webhook(c *gin.Context) {
	p.paymentService.HandleWebhook(c)
}
