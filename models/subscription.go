package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionFree      SubscriptionStatus = "FREE"
	SubscriptionPremium   SubscriptionStatus = "PREMIUM"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// SubscriptionInfo mirrors the vendor's billing state as reported by the
// payment gateway. The gateway protocol itself lives outside this service.
type SubscriptionInfo struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID          uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"vendor_id"`
	Vendor            Vendor             `gorm:"foreignKey:VendorID" json:"-"`
	Status            SubscriptionStatus `gorm:"default:FREE" json:"status"`
	SubscriptionStart *time.Time         `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time         `json:"subscription_end,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (s *SubscriptionInfo) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
