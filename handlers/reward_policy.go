package handlers

import (
	"net/http"
	"time"

	"rewardify-backend/models"
	"rewardify-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardPolicyHandler struct {
	DB *gorm.DB
}

func (h *RewardPolicyHandler) GetRewardPolicy(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	var policy models.RewardPolicy
	err := h.DB.Where("vendor_id = ?", vendorID).First(&policy).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{"policy": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reward policy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy})
}

// UpsertRewardPolicy creates or replaces the vendor's reward policy. The
// config is normalized per type before it is stored, so stale parameters from
// a previous type never survive a type change.
func (h *RewardPolicyHandler) UpsertRewardPolicy(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	vid := vendorID.(uuid.UUID)

	var req struct {
		Name     string                  `json:"name"`
		Type     models.RewardPolicyType `json:"type" binding:"required"`
		Config   models.PolicyConfig     `json:"config"`
		Expiry   *int                    `json:"expiry"`
		IsActive *bool                   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	cleanConfig, expiryDays, err := models.NormalizeConfig(req.Type, req.Config, req.Expiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	name := req.Name
	if name == "" {
		name = string(req.Type) + " Policy"
	}

	var expiresAt *time.Time
	if expiryDays != nil {
		t := time.Now().AddDate(0, 0, *expiryDays)
		expiresAt = &t
	}

	var policy models.RewardPolicy
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("vendor_id = ?", vid).First(&policy).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == gorm.ErrRecordNotFound {
			policy = models.RewardPolicy{
				VendorID:  vid,
				Name:      name,
				Type:      req.Type,
				Config:    cleanConfig,
				Expiry:    expiryDays,
				ExpiresAt: expiresAt,
				IsActive:  isActive,
			}
			return tx.Create(&policy).Error
		}

		policy.Name = name
		policy.Type = req.Type
		policy.Config = cleanConfig
		policy.Expiry = expiryDays
		policy.ExpiresAt = expiresAt
		policy.IsActive = isActive
		return tx.Save(&policy).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reward policy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy})
}
