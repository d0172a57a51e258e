package response_models

import (
	"time"
)

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	// Optional: timezone used for bucketing (defaults to UTC if empty)
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalInvoices     int64 `json:"total_invoices"`
	InvoicesInPeriod  int64 `json:"invoices_in_period"`
	TotalFeedback     int64 `json:"total_feedback"`
	FeedbackInPeriod  int64 `json:"feedback_in_period"`
	AnonymousFeedback int64 `json:"anonymous_feedback"`
	CouponsIssued     int64 `json:"coupons_issued"`
	CouponsRedeemed   int64 `json:"coupons_redeemed"`

	// Averages over the selected period (0 when no feedback exists)
	AvgOverallRating       float64 `json:"avg_overall_rating"`
	AvgQualityRating       float64 `json:"avg_quality_rating"`
	AvgCommunicationRating float64 `json:"avg_communication_rating"`

	// feedback received / invoices issued, as a percentage
	FeedbackRatioPct float64 `json:"feedback_ratio_pct"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type RatingPoint struct {
	Bucket time.Time `json:"bucket"`
	Avg    float64   `json:"avg"`
	Count  int64     `json:"count"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
}

type RatingSeries struct {
	Points []RatingPoint `json:"points"`
}

type RecentFeedbackItem struct {
	InvoiceNumber string `json:"invoice_number"`
	OverallRating int    `json:"overall_rating"`
	Comment       string `json:"comment"`
	IsAnonymous   bool   `json:"is_anonymous"`
	CreatedAt     int64  `json:"created_at"`
}

type DashboardReport struct {
	Range          TimeRange            `json:"range"`
	KPIs           KPIBlock             `json:"kpis"`
	Invoices       CountSeries          `json:"invoices"`
	Feedback       CountSeries          `json:"feedback"`
	RatingTrend    RatingSeries         `json:"rating_trend"`
	RecentFeedback []RecentFeedbackItem `json:"recent_feedback"`
}
