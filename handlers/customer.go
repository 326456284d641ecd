package handlers

import (
	"net/http"
	"strconv"
	"time"

	"rewardify-backend/models"
	"rewardify-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerHandler struct {
	DB *gorm.DB
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	vendorID, exists := c.Get("vendor_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Phone     string `json:"phone" binding:"required"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Gender    string `json:"gender"`
		TaxNumber string `json:"tax_number"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = "NA"
	}

	var existing models.Customer
	if err := h.DB.Where("vendor_id = ? AND phone = ?", vendorID, req.Phone).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A customer with this phone number already exists"})
		return
	}

	customer := models.Customer{
		VendorID:  vendorID.(uuid.UUID),
		Phone:     req.Phone,
		Name:      req.Name,
		Email:     req.Email,
		Gender:    gender,
		TaxNumber: req.TaxNumber,
		Rewards:   models.RewardLedger{},
		IsActive:  true,
	}

	if err := h.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	query := h.DB.Where("vendor_id = ?", vendorID)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("phone LIKE ? OR name LIKE ? OR email LIKE ?", like, like, like)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	query.Model(&models.Customer{}).Count(&total)

	var customers []models.Customer
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var customer models.Customer
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var customer models.Customer
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var req struct {
		Phone     string `json:"phone" binding:"required"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Gender    string `json:"gender"`
		TaxNumber string `json:"tax_number"`
		IsActive  *bool  `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	customer.Phone = req.Phone
	customer.Name = req.Name
	customer.Email = req.Email
	customer.TaxNumber = req.TaxNumber
	if req.Gender != "" {
		customer.Gender = req.Gender
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var customer models.Customer
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	if err := h.DB.Delete(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// GetCustomerRewards returns the customer's ledger entries for the requesting
// vendor together with the available (unexpired) balance per reward type. The
// balance is computed here by scanning the sequence; the ledger itself stores
// only the append-only history.
func (h *CustomerHandler) GetCustomerRewards(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var customer models.Customer
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	entries := customer.Rewards[vendorID.(uuid.UUID).String()]
	now := time.Now()

	available := map[string]float64{}
	for _, entry := range entries {
		if entry.Expired(now) {
			continue
		}
		available[entry.Type] += entry.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_id": customer.ID,
		"entries":     entries,
		"available":   available,
	})
}
