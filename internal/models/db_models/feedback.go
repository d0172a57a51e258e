package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type Feedback struct {
	BaseModel
	OwnerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	InvoiceID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	OverallRating       int `gorm:"type:int;check:overall_rating >= 1 AND overall_rating <= 5"`
	QualityRating       int `gorm:"type:int;check:quality_rating >= 1 AND quality_rating <= 5"`
	CommunicationRating int `gorm:"type:int;check:communication_rating >= 1 AND communication_rating <= 5"`

	Comment     string `gorm:"type:text"`
	Suggestions string `gorm:"type:text"`

	// Tap-to-select chips from the feedback form ("on time", "great value").
	Highlights pq.StringArray `gorm:"type:text[]"`

	// Anonymous submissions keep the closed state but carry no content.
	IsAnonymous bool `gorm:"default:false"`

	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}
