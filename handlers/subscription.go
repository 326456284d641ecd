package handlers

import (
	"net/http"

	"rewardify-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionHandler struct {
	DB *gorm.DB
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	vid := vendorID.(uuid.UUID)

	var subscription models.SubscriptionInfo
	err := h.DB.Where("vendor_id = ?", vid).First(&subscription).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
			return
		}
		// vendors predating the subscription table default to the free tier
		subscription = models.SubscriptionInfo{
			VendorID: vid,
			Status:   models.SubscriptionFree,
		}
		if err := h.DB.Create(&subscription).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"subscription": subscription})
}
