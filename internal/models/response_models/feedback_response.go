package response_models

type FeedbackFormResponse struct {
	OrganizationName string `json:"organization_name"`
	InvoiceNumber    string `json:"invoice_number"`
	AlreadySubmitted bool   `json:"already_submitted"`
	HasCoupon        bool   `json:"has_coupon"`
}

type SubmitFeedbackResponse struct {
	// Present only when a valid coupon token accompanied the submission.
	Coupon *CouponRevealResponse `json:"coupon,omitempty"`
}

type AssistFeedbackResponse struct {
	Draft         string `json:"draft"`
	UsesRemaining int    `json:"uses_remaining"`
}

type SimilarFeedbackItem struct {
	InvoiceNumber string  `json:"invoice_number"`
	Comment       string  `json:"comment"`
	OverallRating int     `json:"overall_rating"`
	Distance      float64 `json:"distance"`
}
