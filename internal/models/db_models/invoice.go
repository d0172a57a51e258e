package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Invoice struct {
	BaseModel
	OwnerID       uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_owner_invoice_no,priority:1;not null"`
	InvoiceNumber string    `gorm:"uniqueIndex:idx_owner_invoice_no,priority:2;not null"`

	MergedPdfURL string

	Subtotal      float64 `gorm:"type:decimal(12,2)"`
	DiscountTotal float64 `gorm:"type:decimal(12,2)"`
	TaxTotal      float64 `gorm:"type:decimal(12,2)"`
	GrandTotal    float64 `gorm:"type:decimal(12,2)"`
	Currency      string  `gorm:"size:3;default:'INR'"`

	IsFeedbackSubmitted bool `gorm:"default:false"`
	AIUseCount          int  `gorm:"default:0"`

	// Snapshot of the business/customer blocks as rendered on the document.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Coupon *Coupon `gorm:"foreignKey:InvoiceID"`

	Owner Owner `gorm:"foreignKey:OwnerID"`
}

// Coupon stores the database form of a coupon code. The QR-embedded form
// carries 4 extra random leading characters that redemption strips off.
type Coupon struct {
	BaseModel
	InvoiceID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Code        string `gorm:"not null"`
	Description string
	ExpiresAt   int64 `gorm:"not null"`
	IsUsed      bool  `gorm:"default:false"`
}
