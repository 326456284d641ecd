package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyDetails struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex" json:"vendor_id"`
	CompanyName    string       `gorm:"not null" json:"company_name"`
	CompanyLogo    string       `json:"company_logo"`
	CompanyAddress string       `json:"company_address"`
	TaxDetails     []TaxDetails `gorm:"foreignKey:CompanyDetailsID" json:"tax_details,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type TaxDetails struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyDetailsID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_details_id"`
	VendorID         uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id"`
	CountryCode      string    `json:"country_code"`
	TaxType          string    `gorm:"not null" json:"tax_type"` // GST, CGST, SGST, IGST, VAT
	TaxNumber        string    `gorm:"not null" json:"tax_number"`
	TaxPercentage    float64   `gorm:"default:0" json:"tax_percentage"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c *CompanyDetails) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (t *TaxDetails) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
