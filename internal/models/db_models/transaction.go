package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending  TransactionStatus = "pending"
	TxnStatusPaid     TransactionStatus = "paid"
	TxnStatusFailed   TransactionStatus = "failed"
	TxnStatusRefunded TransactionStatus = "refunded"
)

type Transaction struct {
	BaseModel
	OwnerID     uuid.UUID         `gorm:"type:uuid;index"`
	PlanID      *uuid.UUID        `gorm:"type:uuid;index"`
	AmountMinor int64             // e.g., 49900 = INR 499.00
	Currency    string            `gorm:"size:3"` // ISO 4217
	Status      TransactionStatus `gorm:"type:transaction_status;index"`

	// Gateway fields
	Provider         string `gorm:"index"`
	ProviderTxnID    string `gorm:"index"` // idempotency across webhooks
	PaymentMethodRef string // last4 / token ref (avoid PCI data)

	// Unix seconds
	AuthorizedAt *int64
	PaidAt       *int64
	RefundedAt   *int64

	// Raw receipts, webhook payloads, failure reasons, etc.
	Receipt  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Owner Owner `gorm:"foreignKey:OwnerID"`
	Plan  *Plan `gorm:"foreignKey:PlanID"`
}
