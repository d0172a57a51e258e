package response_models

type AccountLoginResponse struct {
	Token     string `json:"token"`
	UserName  string `json:"username"`
	PlanName  string `json:"plan_name"`
	IsPremium bool   `json:"is_premium"`
}

type OwnerProfileResponse struct {
	ID               string `json:"id"`
	UserName         string `json:"username"`
	Email            string `json:"email"`
	OrganizationName string `json:"organization_name"`
	Phone            string `json:"phone"`
	GSTIN            string `json:"gstin"`
	GSTINVerified    bool   `json:"gstin_verified"`
	PlanName         string `json:"plan_name"`
	PlanEndsAt       int64  `json:"plan_ends_at"`
	InvoiceCount     int64  `json:"invoice_count"`
}
