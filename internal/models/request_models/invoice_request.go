package request_models

type InvoiceItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	Rate        float64 `json:"rate" binding:"required,gte=0"`
	Discount    float64 `json:"discount" binding:"gte=0,lte=100"` // percent
}

type CouponRequest struct {
	Code        string `json:"code" binding:"required,min=2,max=20,alphanum"`
	Description string `json:"description"`
	ExpiryDays  int    `json:"expiry_days" binding:"required,gt=0"`
}

type CreateInvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date" binding:"required"`
	DueDate       string `json:"due_date"`
	PaymentTerms  string `json:"payment_terms"`

	BusinessName    string `json:"business_name" binding:"required"`
	BusinessEmail   string `json:"business_email" binding:"omitempty,email"`
	BusinessPhone   string `json:"business_phone"`
	BusinessAddress string `json:"business_address"`

	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`

	Items   []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate float64              `json:"tax_rate" binding:"gte=0,lte=100"` // percent

	BankDetails         string `json:"bank_details"`
	PaymentMethod       string `json:"payment_method"`
	PaymentInstructions string `json:"payment_instructions"`
	Notes               string `json:"notes"`

	IncludeFeedbackForm bool           `json:"include_feedback_form"`
	AddCoupon           bool           `json:"add_coupon"`
	Coupon              *CouponRequest `json:"coupon"`
}
