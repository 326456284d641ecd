package database

import (
	"fmt"
	"log"
	"os"

	"rewardify-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=rewardify port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Vendor{},
		&models.CompanyDetails{},
		&models.TaxDetails{},
		&models.Customer{},
		&models.RewardPolicy{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.TransactionAudit{},
		&models.Promotion{},
		&models.Employee{},
		&models.GiftCard{},
		&models.InvoiceGeneration{},
		&models.SubscriptionInfo{},
		&models.RefreshToken{},
	); err != nil {
		return err
	}

	// Customer rows created before the ledger column had a default can hold
	// NULL, which breaks the jsonb scan. Safe to run repeatedly.
	if err := repairCustomerRewardsColumn(db); err != nil {
		return err
	}

	return nil
}

func CreateDefaultVendor(db *gorm.DB) error {
	vendorEmail := os.Getenv("DEFAULT_VENDOR_EMAIL")
	vendorPassword := os.Getenv("DEFAULT_VENDOR_PASSWORD")

	if vendorEmail == "" {
		vendorEmail = "admin@rewardify.app"
	}
	if vendorPassword == "" {
		vendorPassword = "admin123"
	}

	var existing models.Vendor
	result := db.Where("email = ?", vendorEmail).First(&existing)
	if result.Error == nil {
		// Vendor already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(vendorPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	vendor := models.Vendor{
		Email:    vendorEmail,
		Password: string(hashedPassword),
		Role:     "ADMIN",
		Name:     "Admin Vendor",
		IsActive: true,
	}

	if err := db.Create(&vendor).Error; err != nil {
		return err
	}

	subscription := models.SubscriptionInfo{
		VendorID: vendor.ID,
		Status:   models.SubscriptionFree,
	}
	if err := db.Create(&subscription).Error; err != nil {
		return err
	}

	log.Printf("Default vendor created: %s", vendorEmail)
	return nil
}

func repairCustomerRewardsColumn(db *gorm.DB) error {
	if err := db.Exec(`
		ALTER TABLE IF EXISTS customers
		ALTER COLUMN rewards SET DEFAULT '{}'::jsonb;
	`).Error; err != nil {
		return fmt.Errorf("failed to set default for customers.rewards: %w", err)
	}

	if err := db.Exec(`
		UPDATE customers
		SET rewards = '{}'::jsonb
		WHERE rewards IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("failed to backfill customers.rewards: %w", err)
	}

	return nil
}
