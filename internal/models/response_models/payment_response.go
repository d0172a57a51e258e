package response_models

type CreateCheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	OrderCode   int64  `json:"order_code"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}
