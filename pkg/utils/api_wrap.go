package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	// Whole hours until a rate-limited caller may retry.
	TimeLeft int `json:"time_left,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	var rle *RateLimitError
	switch {
	case errors.As(err, &rle):
		c.JSON(http.StatusTooManyRequests, APIResponse{
			Status:   "error",
			Code:     http.StatusTooManyRequests,
			Message:  "Daily invoice limit reached",
			TraceID:  traceID(c),
			TimeLeft: rle.HoursRemaining,
		})
	case errors.Is(err, ErrOwnerNotFound):
		RespondError(c, http.StatusNotFound, "Owner not found")
	case errors.Is(err, ErrInvalidInvoice):
		RespondError(c, http.StatusNotFound, "Invoice not found")
	case errors.Is(err, ErrDuplicateInvoiceId):
		RespondError(c, http.StatusBadRequest, "Invoice number already exists, choose another number")
	case errors.Is(err, ErrAlreadySubmitted):
		RespondError(c, http.StatusConflict, "Feedback has already been submitted for this invoice")
	case errors.Is(err, ErrAIAssistLimit):
		RespondError(c, http.StatusTooManyRequests, "AI assist limit reached for this invoice")
	case errors.Is(err, ErrCouponNotFound):
		RespondError(c, http.StatusNotFound, "Coupon not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, ErrUsernameAlreadyExists):
		RespondError(c, http.StatusBadRequest, "Username already taken")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrDatabaseError), errors.Is(err, ErrUpstreamFailure):
		log.Printf("Upstream error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error, please retry later")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
