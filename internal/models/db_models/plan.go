package db_models

import (
	"gorm.io/datatypes"
)

type BillingPeriod string

const (
	PeriodMonth BillingPeriod = "month"
	PeriodYear  BillingPeriod = "year"
)

type Plan struct {
	BaseModel
	Code        string `gorm:"uniqueIndex"` // "pro_monthly", "pro_yearly"
	Name        string
	Description *string
	Period      BillingPeriod `gorm:"type:billing_period"` // "month" | "year"
	PriceMinor  int64         // 49900 = INR 499.00
	Currency    string        `gorm:"size:3"` // ISO 4217
	TrialDays   int32         `gorm:"default:0"`
	IsActive    bool          `gorm:"default:true"`
	// Feature flags and plan limits (daily invoice quota, AI caps).
	Features datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
