package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Promotion struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor             Vendor         `gorm:"foreignKey:VendorID" json:"-"`
	Name               string         `gorm:"not null" json:"name"`
	Description        string         `json:"description"`
	Category           string         `gorm:"not null" json:"category"`
	OriginalPrice      float64        `gorm:"not null" json:"original_price"`
	UpdatedPrice       float64        `gorm:"not null" json:"updated_price"`
	DiscountPercent    float64        `gorm:"default:0" json:"discount_percent"`
	Images             datatypes.JSON `json:"images"` // array of storage URLs
	StartDate          *time.Time     `json:"start_date"`
	EndDate            *time.Time     `json:"end_date"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	MaxRedemptions     *int           `json:"max_redemptions,omitempty"`
	CurrentRedemptions int            `gorm:"default:0" json:"current_redemptions"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
