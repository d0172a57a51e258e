package db_models

type PlanName string

const (
	PlanFree     PlanName = "free"
	PlanPro      PlanName = "pro"
	PlanProTrial PlanName = "pro-trial"
)

type Owner struct {
	BaseModel
	UserName     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	IsGoogleAuth bool `gorm:"default:false"`

	OrganizationName string
	Phone            string
	AddressLine      string
	City             string
	State            string
	PostalCode       string
	Country          string

	GSTIN         string
	GSTINVerified bool `gorm:"default:false"`

	PlanName     PlanName `gorm:"type:varchar(16);default:'free'"`
	PlanStartsAt int64
	PlanEndsAt   int64

	// Lifetime and daily invoice counters. DailyUploads resets when more
	// than 24h have passed since LastDailyReset.
	InvoiceCount   int64 `gorm:"default:0"`
	DailyUploads   int   `gorm:"default:0"`
	LastDailyReset int64 `gorm:"default:0"`

	// InvoiceSeq is the per-owner coupon ordinal. It only ever increases,
	// even when invoices are deleted, so coupon codes never collide.
	InvoiceSeq int64 `gorm:"default:0"`

	Invoices []Invoice `gorm:"foreignKey:OwnerID"`
}
