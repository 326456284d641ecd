package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"rewardify-backend/models"
	"rewardify-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GiftCardHandler struct {
	DB *gorm.DB
}

var (
	errGiftCardRedeemed = errors.New("gift card already redeemed")
	errGiftCardExpired  = errors.New("gift card expired")
)

func generateGiftCardCode() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

func (h *GiftCardHandler) CreateGiftCard(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	var req struct {
		Amount       float64 `json:"amount" binding:"required,gt=0"`
		Description  string  `json:"description"`
		Terms        string  `json:"terms"`
		ValidityDays int     `json:"validity_days" binding:"required,gte=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	code, err := generateGiftCardCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate gift card code"})
		return
	}

	card := models.GiftCard{
		VendorID:       vendorID.(uuid.UUID),
		Code:           code,
		Amount:         req.Amount,
		Description:    req.Description,
		Terms:          req.Terms,
		ValidityDays:   req.ValidityDays,
		ExpirationDate: time.Now().Add(time.Duration(req.ValidityDays) * 24 * time.Hour),
	}

	if err := h.DB.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gift card"})
		return
	}

	c.JSON(http.StatusCreated, card)
}

func (h *GiftCardHandler) GetGiftCards(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	query := h.DB.Where("vendor_id = ?", vendorID)

	switch c.Query("status") {
	case "redeemed":
		query = query.Where("is_redeemed = ?", true)
	case "active":
		query = query.Where("is_redeemed = ? AND expiration_date > ?", false, time.Now())
	case "expired":
		query = query.Where("is_redeemed = ? AND expiration_date <= ?", false, time.Now())
	}

	var cards []models.GiftCard
	if err := query.Order("created_at DESC").Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gift cards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"gift_cards": cards})
}

func (h *GiftCardHandler) GetGiftCard(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var card models.GiftCard
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&card).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gift card not found"})
		return
	}

	c.JSON(http.StatusOK, card)
}

// RedeemGiftCard marks a card redeemed by code. The row is locked so a code
// presented twice concurrently is only honored once.
func (h *GiftCardHandler) RedeemGiftCard(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	var req struct {
		Code string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var card models.GiftCard
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("vendor_id = ? AND code = ?", vendorID, strings.ToUpper(req.Code)).
			First(&card).Error; err != nil {
			return err
		}

		if card.IsRedeemed {
			return errGiftCardRedeemed
		}
		if time.Now().After(card.ExpirationDate) {
			return errGiftCardExpired
		}

		now := time.Now()
		card.IsRedeemed = true
		card.RedeemedAt = &now
		return tx.Model(&card).Updates(map[string]interface{}{
			"is_redeemed": true,
			"redeemed_at": now,
		}).Error
	})

	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Gift card redeemed successfully", "gift_card": card})
	case gorm.ErrRecordNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Gift card not found"})
	case errGiftCardRedeemed:
		c.JSON(http.StatusConflict, gin.H{"error": "Gift card has already been redeemed"})
	case errGiftCardExpired:
		c.JSON(http.StatusGone, gin.H{"error": "Gift card has expired"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem gift card"})
	}
}

func (h *GiftCardHandler) DeleteGiftCard(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var card models.GiftCard
	if err := h.DB.Where("id = ? AND vendor_id = ?", id, vendorID).First(&card).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gift card not found"})
		return
	}

	if card.IsRedeemed {
		c.JSON(http.StatusConflict, gin.H{"error": "Redeemed gift cards cannot be deleted"})
		return
	}

	if err := h.DB.Delete(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gift card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gift card deleted successfully"})
}
