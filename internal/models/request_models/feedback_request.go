package request_models

type SubmitFeedbackRequest struct {
	InvoiceNumber string `json:"invoice_number" binding:"required"`

	OverallRating       int `json:"overall_rating" binding:"required,min=1,max=5"`
	QualityRating       int `json:"quality_rating" binding:"omitempty,min=1,max=5"`
	CommunicationRating int `json:"communication_rating" binding:"omitempty,min=1,max=5"`

	Comment     string   `json:"comment"`
	Suggestions string   `json:"suggestions"`
	Highlights  []string `json:"highlights" binding:"max=10,dive,max=40"`
	IsAnonymous bool     `json:"is_anonymous"`

	// QR-embedded coupon token (4 random chars + db code), optional.
	CouponCode string `json:"cpcd"`
}

type AssistFeedbackRequest struct {
	InvoiceNumber string `json:"invoice_number" binding:"required"`
	Draft         string `json:"draft" binding:"required,min=3"`
	Tone          string `json:"tone"` // "constructive" | "appreciative" | ""
}
