package handlers

import (
	"fmt"
	"net/http"
	"time"

	"rewardify-backend/models"
	"rewardify-backend/rewards"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	DB *gorm.DB
}

// invoicePayload is the renderable invoice: vendor and customer details plus
// the transaction's line items and totals breakdown.
type invoicePayload struct {
	ReferenceNumber string                   `json:"reference_number"`
	GeneratedAt     time.Time                `json:"generated_at"`
	Vendor          gin.H                    `json:"vendor"`
	Customer        gin.H                    `json:"customer"`
	Transaction     gin.H                    `json:"transaction"`
	Items           []models.TransactionItem `json:"items"`
	Totals          rewards.Totals           `json:"totals"`
}

func buildInvoicePayload(db *gorm.DB, record models.InvoiceGeneration, transaction models.Transaction) (invoicePayload, error) {
	var vendor models.Vendor
	if err := db.Preload("CompanyDetails.TaxDetails").
		First(&vendor, "id = ?", transaction.VendorID).Error; err != nil {
		return invoicePayload{}, err
	}

	vendorInfo := gin.H{
		"name":  vendor.Name,
		"email": vendor.Email,
		"phone": vendor.Phone,
	}
	if vendor.CompanyDetails != nil {
		vendorInfo["company_name"] = vendor.CompanyDetails.CompanyName
		vendorInfo["company_address"] = vendor.CompanyDetails.CompanyAddress
		vendorInfo["company_logo"] = vendor.CompanyDetails.CompanyLogo
	}

	customerInfo := gin.H{"phone": transaction.Phone}
	if transaction.CustomerID != nil {
		var customer models.Customer
		if err := db.First(&customer, "id = ?", *transaction.CustomerID).Error; err == nil {
			customerInfo["name"] = customer.Name
			customerInfo["email"] = customer.Email
			customerInfo["tax_number"] = customer.TaxNumber
		}
	}

	return invoicePayload{
		ReferenceNumber: record.ReferenceNumber,
		GeneratedAt:     record.GeneratedAt,
		Vendor:          vendorInfo,
		Customer:        customerInfo,
		Transaction: gin.H{
			"id":          transaction.ID,
			"type":        transaction.Type,
			"description": transaction.Description,
			"created_at":  transaction.CreatedAt,
		},
		Items:  transaction.Items,
		Totals: rewards.ComputeTotals(transaction.Items, transaction.DiscountPercentage),
	}, nil
}

// GenerateInvoice produces the invoice data for a transaction and records the
// generation under a unique reference number. Regenerating for the same
// transaction issues a new reference.
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	vid := vendorID.(uuid.UUID)
	id := c.Param("id")

	var transaction models.Transaction
	if err := h.DB.Preload("Items").
		Where("id = ? AND vendor_id = ?", id, vid).
		First(&transaction).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	record := models.InvoiceGeneration{
		TransactionID:   transaction.ID,
		ReferenceNumber: fmt.Sprintf("INV-%d-%s", time.Now().Unix(), uuid.NewString()[:8]),
		GeneratedBy:     &vid,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record invoice generation"})
		return
	}

	payload, err := buildInvoicePayload(h.DB, record, transaction)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build invoice"})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// GetInvoiceByReference serves a previously generated invoice by its
// reference number. The reference is unguessable, so the route is public and
// can back a shared invoice link.
func (h *InvoiceHandler) GetInvoiceByReference(c *gin.Context) {
	reference := c.Param("reference")

	var record models.InvoiceGeneration
	if err := h.DB.Where("reference_number = ?", reference).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	var transaction models.Transaction
	if err := h.DB.Preload("Items").
		First(&transaction, "id = ?", record.TransactionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	payload, err := buildInvoicePayload(h.DB, record, transaction)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build invoice"})
		return
	}

	c.JSON(http.StatusOK, payload)
}
