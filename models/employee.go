package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Employee struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_employees_vendor_email" json:"vendor_id"`
	Vendor      Vendor         `gorm:"foreignKey:VendorID" json:"-"`
	Name        string         `json:"name"`
	Email       string         `gorm:"not null;uniqueIndex:idx_employees_vendor_email" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Role        string         `gorm:"default:EMPLOYEE" json:"role"`  // MANAGER, EMPLOYEE
	Status      string         `gorm:"default:ACTIVE" json:"status"`  // ACTIVE, INACTIVE, SUSPENDED
	Permissions datatypes.JSON `json:"permissions,omitempty"`         // canViewTransactions, canCreateTransactions, canManageCustomers
	LastLogin   *time.Time     `json:"last_login,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
