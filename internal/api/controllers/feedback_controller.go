package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invisifeed/internal/models/request_models"
	"invisifeed/internal/services"
	"invisifeed/pkg/utils"
)

type FeedbackController struct {
	feedbackService services.FeedbackServiceInterface
}

func NewFeedbackController(feedbackService services.FeedbackServiceInterface) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
	}
}

// GetFeedbackForm godoc
// @Summary Resolve a feedback form from a QR link
// @Description Public endpoint reached by scanning the invoice QR code
// @Tags Feedback
// @Produce json
// @Param username path string true "Owner username"
// @Param invoiceNo query string true "Invoice number"
// @Success 200 {object} response_models.FeedbackFormResponse
// @Failure 404 {object} utils.APIResponse
// @Router /feedback/{username} [get]
func (f *FeedbackController) GetFeedbackForm(c *gin.Context) {
	username := c.Param("username")
	invoiceNo := c.Query("invoiceNo")
	if username == "" || invoiceNo == "" {
		utils.RespondError(c, http.StatusBadRequest, "Username and invoiceNo are required")
		return
	}

	form, err := f.feedbackService.GetFeedbackForm(c.Request.Context(), username, invoiceNo)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, form, "Feedback form resolved")
}

// SubmitFeedback godoc
// @Summary Submit feedback for an invoice
// @Description Accepts one submission per invoice; a valid coupon token in the body is revealed on success
// @Tags Feedback
// @Accept json
// @Produce json
// @Param username path string true "Owner username"
// @Param request body request_models.SubmitFeedbackRequest true "Ratings and comments"
// @Success 200 {object} response_models.SubmitFeedbackResponse
// @Failure 409 {object} utils.APIResponse
// @Router /feedback/{username} [post]
func (f *FeedbackController) SubmitFeedback(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		utils.RespondError(c, http.StatusBadRequest, "Username is required")
		return
	}

	var req request_models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := f.feedbackService.SubmitFeedback(c.Request.Context(), username, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Feedback submitted, thank you")
}

// AssistFeedback godoc
// @Summary Improve a feedback draft with AI
// @Description Limited to a small number of calls per invoice
// @Tags Feedback
// @Accept json
// @Produce json
// @Param username path string true "Owner username"
// @Param request body request_models.AssistFeedbackRequest true "Draft text and tone"
// @Success 200 {object} response_models.AssistFeedbackResponse
// @Failure 429 {object} utils.APIResponse
// @Router /feedback/{username}/assist [post]
func (f *FeedbackController) AssistFeedback(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		utils.RespondError(c, http.StatusBadRequest, "Username is required")
		return
	}

	var req request_models.AssistFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := f.feedbackService.AssistFeedback(c.Request.Context(), username, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Draft improved")
}

// FindSimilar godoc
// @Summary Search the owner's feedback by semantic similarity
// @Tags Feedback
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Max results" default(10) minimum(1) maximum(50)
// @Success 200 {array} response_models.SimilarFeedbackItem
// @Security BearerAuth
// @Router /feedback/similar [get]
func (f *FeedbackController) FindSimilar(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query text is required")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		utils.RespondError(c, http.StatusBadRequest, "Limit must be between 1 and 50")
		return
	}

	items, err := f.feedbackService.FindSimilar(c.Request.Context(), ownerID, query, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Similar feedback fetched")
}
