package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"rewardify-backend/models"
	"rewardify-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EmployeeHandler struct {
	DB *gorm.DB
}

func generateTempPassword() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

var defaultEmployeePermissions = map[string]bool{
	"canViewTransactions":   true,
	"canCreateTransactions": true,
	"canManageCustomers":    false,
}

// InviteEmployee creates an employee account with a generated temporary
// password and mails it to them.
func (h *EmployeeHandler) InviteEmployee(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	vid := vendorID.(uuid.UUID)

	var req struct {
		Name        string          `json:"name" binding:"required"`
		Email       string          `json:"email" binding:"required,email"`
		Role        string          `json:"role"`
		Permissions map[string]bool `json:"permissions"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	role := req.Role
	if role == "" {
		role = "EMPLOYEE"
	}
	if role != "EMPLOYEE" && role != "MANAGER" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee role"})
		return
	}

	var existing models.Employee
	if err := h.DB.Where("vendor_id = ? AND email = ?", vid, req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An employee with this email already exists"})
		return
	}

	var vendor models.Vendor
	if err := h.DB.First(&vendor, "id = ?", vid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendor"})
		return
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate password"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = defaultEmployeePermissions
	}
	rawPermissions, err := json.Marshal(permissions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	employee := models.Employee{
		VendorID:    vid,
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        role,
		Status:      "ACTIVE",
		Permissions: datatypes.JSON(rawPermissions),
	}

	if err := h.DB.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	utils.SendEmployeeInvite(employee.Email, vendor.Name, tempPassword)

	c.JSON(http.StatusCreated, gin.H{"employee": employee})
}

func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	var employees []models.Employee
	if err := h.DB.Where("vendor_id = ?", vendorID).
		Order("created_at DESC").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var employee models.Employee
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&employee).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var req struct {
		Name        string          `json:"name"`
		Role        string          `json:"role"`
		Status      string          `json:"status"`
		Permissions map[string]bool `json:"permissions"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != "" {
		employee.Name = req.Name
	}
	if req.Role != "" {
		if req.Role != "EMPLOYEE" && req.Role != "MANAGER" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee role"})
			return
		}
		employee.Role = req.Role
	}
	if req.Status != "" {
		switch req.Status {
		case "ACTIVE", "INACTIVE", "SUSPENDED":
			employee.Status = req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee status"})
			return
		}
	}
	if req.Permissions != nil {
		raw, err := json.Marshal(req.Permissions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
			return
		}
		employee.Permissions = datatypes.JSON(raw)
	}

	if err := h.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var employee models.Employee
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&employee).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	if err := h.DB.Delete(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
