package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Vendor struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email             string          `gorm:"uniqueIndex;not null" json:"email"`
	Password          string          `gorm:"not null" json:"-"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	Role              string          `gorm:"default:VENDOR" json:"role"` // VENDOR, ADMIN
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	ProfileCompletion bool            `gorm:"default:false" json:"profile_completion"`
	Settings          datatypes.JSON  `json:"settings,omitempty"` // theme, language, tooltips
	CompanyDetails    *CompanyDetails `gorm:"foreignKey:VendorID" json:"company_details,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
