package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID  uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_customers_vendor_phone" json:"vendor_id"`
	Vendor    Vendor         `gorm:"foreignKey:VendorID" json:"-"`
	Phone     string         `gorm:"not null;uniqueIndex:idx_customers_vendor_phone" json:"phone"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Gender    string         `gorm:"default:NA" json:"gender"` // MALE, FEMALE, OTHER, NA
	TaxNumber string         `json:"tax_number"`
	Rewards   RewardLedger   `gorm:"type:jsonb" json:"rewards"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Rewards == nil {
		c.Rewards = RewardLedger{}
	}
	return nil
}
