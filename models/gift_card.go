package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GiftCard struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor         Vendor         `gorm:"foreignKey:VendorID" json:"-"`
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`
	Amount         float64        `gorm:"not null" json:"amount"`
	Description    string         `json:"description"`
	Terms          string         `json:"terms"`
	ValidityDays   int            `gorm:"not null" json:"validity_days"`
	ExpirationDate time.Time      `gorm:"not null" json:"expiration_date"`
	IsRedeemed     bool           `gorm:"default:false" json:"is_redeemed"`
	RedeemedAt     *time.Time     `json:"redeemed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (g *GiftCard) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
