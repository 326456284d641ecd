package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceGeneration records each time an invoice was produced for a
// transaction, keyed by the caller-supplied reference number.
type InvoiceGeneration struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TransactionID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Transaction     Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	ReferenceNumber string      `gorm:"uniqueIndex;not null" json:"reference_number"`
	GeneratedBy     *uuid.UUID  `gorm:"type:uuid" json:"generated_by,omitempty"`
	GeneratedAt     time.Time   `gorm:"autoCreateTime" json:"generated_at"`
}

func (i *InvoiceGeneration) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
