package response_models

type CreateInvoiceResponse struct {
	InvoiceNumber string `json:"invoice_number"`
	URL           string `json:"url"`
}

type UploadCountResponse struct {
	DailyUploads int `json:"daily_uploads"`
	// Whole hours until the daily window resets; 0 when slots remain.
	TimeLeft   int `json:"time_left"`
	DailyLimit int `json:"daily_limit"`
}

type InvoiceSummary struct {
	ID                  string  `json:"id"`
	InvoiceNumber       string  `json:"invoice_number"`
	MergedPdfURL        string  `json:"merged_pdf_url"`
	GrandTotal          float64 `json:"grand_total"`
	Currency            string  `json:"currency"`
	IsFeedbackSubmitted bool    `json:"is_feedback_submitted"`
	CouponCode          string  `json:"coupon_code,omitempty"`
	CouponUsed          bool    `json:"coupon_used"`
	CouponExpiresAt     int64   `json:"coupon_expires_at,omitempty"`
	CreatedAt           int64   `json:"created_at"`
}

type CouponRevealResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	ExpiresAt   int64  `json:"expires_at"`
}
