package handlers

import (
	"net/http"
	"time"

	"rewardify-backend/models"
	"rewardify-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var existing models.Vendor
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	vendor := models.Vendor{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     "VENDOR",
		IsActive: true,
	}

	if err := h.DB.Create(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vendor"})
		return
	}

	// Every new vendor starts on the free plan
	subscription := models.SubscriptionInfo{
		VendorID: vendor.ID,
		Status:   models.SubscriptionFree,
	}
	h.DB.Create(&subscription)

	token, err := utils.GenerateToken(vendor.ID, vendor.Email, vendor.Role, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(vendor.ID, vendor.Email, vendor.Role, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	rt := models.RefreshToken{
		VendorID:  vendor.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	h.DB.Create(&rt)

	// Send welcome email (non-blocking)
	utils.SendWelcomeEmail(vendor.Email, vendor.Name)

	c.JSON(http.StatusCreated, gin.H{
		"token":         token,
		"refresh_token": refreshToken,
		"vendor": gin.H{
			"id":                 vendor.ID,
			"email":              vendor.Email,
			"name":               vendor.Name,
			"role":               vendor.Role,
			"profile_completion": vendor.ProfileCompletion,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var vendor models.Vendor
	if err := h.DB.Where("email = ?", req.Email).First(&vendor).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !vendor.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Your account has been deactivated. Please contact support."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(vendor.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(vendor.ID, vendor.Email, vendor.Role, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(vendor.ID, vendor.Email, vendor.Role, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	rt := models.RefreshToken{
		VendorID:  vendor.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	h.DB.Create(&rt)

	c.JSON(http.StatusOK, gin.H{
		"token":         token,
		"refresh_token": refreshToken,
		"vendor": gin.H{
			"id":                 vendor.ID,
			"email":              vendor.Email,
			"name":               vendor.Name,
			"role":               vendor.Role,
			"phone":              vendor.Phone,
			"profile_completion": vendor.ProfileCompletion,
		},
	})
}

// EmployeeLogin authenticates an employee against its vendor-scoped account.
// The issued token carries the owning vendor's id so data access stays within
// that vendor's records.
func (h *AuthHandler) EmployeeLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var employee models.Employee
	if err := h.DB.Where("email = ? AND status = ?", req.Email, "ACTIVE").First(&employee).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(employee.VendorID, employee.Email, employee.Role, &employee.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	now := time.Now()
	h.DB.Model(&employee).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"employee": gin.H{
			"id":        employee.ID,
			"email":     employee.Email,
			"name":      employee.Name,
			"role":      employee.Role,
			"vendor_id": employee.VendorID,
		},
	})
}

func (h *AuthHandler) RefreshTokenHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var rt models.RefreshToken
	if err := h.DB.Where("token = ? AND revoked_at IS NULL AND expires_at > ?", req.RefreshToken, time.Now()).First(&rt).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	var vendor models.Vendor
	if err := h.DB.Where("id = ?", rt.VendorID).First(&vendor).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Vendor not found"})
		return
	}

	// Rotate: revoke the used token and issue a fresh pair
	now := time.Now()
	h.DB.Model(&rt).Update("revoked_at", &now)

	token, err := utils.GenerateToken(vendor.ID, vendor.Email, vendor.Role, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	newRefreshToken, err := utils.GenerateRefreshToken(vendor.ID, vendor.Email, vendor.Role, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	newRT := models.RefreshToken{
		VendorID:  vendor.ID,
		Token:     newRefreshToken,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	h.DB.Create(&newRT)

	c.JSON(http.StatusOK, gin.H{
		"token":         token,
		"refresh_token": newRefreshToken,
	})
}
