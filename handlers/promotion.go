package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"rewardify-backend/firebase"
	"rewardify-backend/models"
	"rewardify-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PromotionHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

type promotionRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	Category        string     `json:"category" binding:"required"`
	OriginalPrice   float64    `json:"original_price" binding:"required,gte=0"`
	UpdatedPrice    float64    `json:"updated_price" binding:"gte=0"`
	DiscountPercent float64    `json:"discount_percent" binding:"gte=0,lte=100"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	MaxRedemptions  *int       `json:"max_redemptions"`
	IsActive        *bool      `json:"is_active"`
}

// derivePricing fills whichever of updated price and discount percent the
// client left out from the other.
func derivePricing(original, updated, discount float64) (float64, float64) {
	if updated == 0 && discount > 0 {
		updated = original - original*discount/100
	} else if discount == 0 && updated > 0 && original > 0 {
		discount = (original - updated) / original * 100
	} else if updated == 0 {
		updated = original
	}
	return updated, discount
}

func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	updated, discount := derivePricing(req.OriginalPrice, req.UpdatedPrice, req.DiscountPercent)

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	promotion := models.Promotion{
		VendorID:        vendorID.(uuid.UUID),
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		OriginalPrice:   req.OriginalPrice,
		UpdatedPrice:    updated,
		DiscountPercent: discount,
		Images:          datatypes.JSON([]byte("[]")),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxRedemptions:  req.MaxRedemptions,
		IsActive:        isActive,
	}

	if err := h.DB.Create(&promotion).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion"})
		return
	}

	c.JSON(http.StatusCreated, promotion)
}

func (h *PromotionHandler) GetPromotions(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	query := h.DB.Where("vendor_id = ?", vendorID)

	if c.Query("active") == "true" {
		now := time.Now()
		query = query.Where("is_active = ?", true).
			Where("start_date IS NULL OR start_date <= ?", now).
			Where("end_date IS NULL OR end_date >= ?", now)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var promotions []models.Promotion
	if err := query.Order("created_at DESC").Find(&promotions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promotions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"promotions": promotions})
}

func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var promotion models.Promotion
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&promotion).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	c.JSON(http.StatusOK, promotion)
}

func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var promotion models.Promotion
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&promotion).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	updated, discount := derivePricing(req.OriginalPrice, req.UpdatedPrice, req.DiscountPercent)

	promotion.Name = req.Name
	promotion.Description = req.Description
	promotion.Category = req.Category
	promotion.OriginalPrice = req.OriginalPrice
	promotion.UpdatedPrice = updated
	promotion.DiscountPercent = discount
	promotion.StartDate = req.StartDate
	promotion.EndDate = req.EndDate
	promotion.MaxRedemptions = req.MaxRedemptions
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&promotion).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion"})
		return
	}

	c.JSON(http.StatusOK, promotion)
}

func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var promotion models.Promotion
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&promotion).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	var images []string
	if len(promotion.Images) > 0 && h.Storage != nil {
		if err := json.Unmarshal(promotion.Images, &images); err == nil {
			for _, url := range images {
				path, err := utils.ExtractObjectPath(url)
				if err != nil {
					continue
				}
				// an orphaned object is not worth failing the delete
				_ = h.Storage.DeleteFile(path)
			}
		}
	}

	if err := h.DB.Delete(&promotion).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promotion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted successfully"})
}

// UploadPromotionImage stores the image and appends its URL to the
// promotion's image list.
func (h *PromotionHandler) UploadPromotionImage(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var promotion models.Promotion
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&promotion).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	if err := utils.ValidateFileUpload(file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	url, err := h.Storage.UploadPromotionImage(src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	var images []string
	if len(promotion.Images) > 0 {
		_ = json.Unmarshal(promotion.Images, &images)
	}
	images = append(images, url)

	raw, err := json.Marshal(images)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion images"})
		return
	}

	if err := h.DB.Model(&promotion).Update("images", datatypes.JSON(raw)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "images": images})
}
