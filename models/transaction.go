package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionCash   TransactionType = "CASH"
	TransactionUPI    TransactionType = "UPI"
	TransactionCredit TransactionType = "CREDIT"
	TransactionDebit  TransactionType = "DEBIT"
	TransactionOther  TransactionType = "OTHER"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionCash, TransactionUPI, TransactionCredit, TransactionDebit, TransactionOther:
		return true
	}
	return false
}

type Transaction struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor             Vendor            `gorm:"foreignKey:VendorID" json:"-"`
	CustomerID         *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer           *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Phone              string            `gorm:"not null;index" json:"phone"`
	Type               TransactionType   `gorm:"not null" json:"type"`
	DiscountPercentage float64           `gorm:"default:0" json:"discount_percentage"`
	// Amount is always recomputed from items server-side; client totals are ignored.
	Amount      float64           `gorm:"not null" json:"amount"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Reward      datatypes.JSON    `json:"reward,omitempty"` // snapshot of the reward granted for this transaction
	Items       []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

type TransactionItem struct {
	ID            uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TransactionID uuid.UUID   `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Transaction   Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Name          string      `gorm:"not null" json:"name"`
	Quantity      int         `gorm:"not null" json:"quantity"`
	Price         float64     `gorm:"not null" json:"price"`
	TaxRate       float64     `gorm:"default:0" json:"tax_rate"`
	TotalAmount   float64     `gorm:"not null" json:"total_amount"` // price x quantity at time of entry
	Description   string      `json:"description"`
	Category      string      `json:"category"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TransactionAudit snapshots a transaction's previous values before an update
// or delete.
type TransactionAudit struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TransactionID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"transaction_id"`
	VendorID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"vendor_id"`
	OriginalValues datatypes.JSON `json:"original_values"`
	Timestamp      time.Time      `gorm:"autoCreateTime" json:"timestamp"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (a *TransactionAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
