package handlers

import (
	"net/http"
	"time"

	"rewardify-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OverviewHandler struct {
	DB *gorm.DB
}

// GetOverview assembles the dashboard: headline figures, a daily cash versus
// digital split for the last 30 days, promotions created this month and the
// most recent transactions.
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	windowStart := dayStart.AddDate(0, 0, -29)

	var totalRevenue float64
	h.DB.Model(&models.Transaction{}).
		Where("vendor_id = ?", vendorID).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	var todayRevenue float64
	h.DB.Model(&models.Transaction{}).
		Where("vendor_id = ? AND created_at >= ?", vendorID, dayStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&todayRevenue)

	var customerCount int64
	h.DB.Model(&models.Customer{}).
		Where("vendor_id = ?", vendorID).Count(&customerCount)

	var transactionCount int64
	h.DB.Model(&models.Transaction{}).
		Where("vendor_id = ?", vendorID).Count(&transactionCount)

	type dailySplit struct {
		Day     string  `json:"day"`
		Cash    float64 `json:"cash"`
		Digital float64 `json:"digital"`
	}

	var recent []models.Transaction
	h.DB.Where("vendor_id = ? AND created_at >= ?", vendorID, windowStart).
		Order("created_at ASC").Find(&recent)

	buckets := map[string]*dailySplit{}
	for _, tx := range recent {
		day := tx.CreatedAt.Format("2006-01-02")
		bucket, ok := buckets[day]
		if !ok {
			bucket = &dailySplit{Day: day}
			buckets[day] = bucket
		}
		if tx.Type == models.TransactionCash {
			bucket.Cash += tx.Amount
		} else {
			bucket.Digital += tx.Amount
		}
	}

	daily := make([]dailySplit, 0, 30)
	for d := windowStart; !d.After(dayStart); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if bucket, ok := buckets[key]; ok {
			daily = append(daily, *bucket)
		} else {
			daily = append(daily, dailySplit{Day: key})
		}
	}

	var monthlyPromotions int64
	h.DB.Model(&models.Promotion{}).
		Where("vendor_id = ? AND created_at >= ?", vendorID, monthStart).
		Count(&monthlyPromotions)

	var latest []models.Transaction
	h.DB.Preload("Items").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").Limit(10).Find(&latest)

	c.JSON(http.StatusOK, gin.H{
		"total_revenue":       totalRevenue,
		"today_revenue":       todayRevenue,
		"customer_count":      customerCount,
		"transaction_count":   transactionCount,
		"daily_split":         daily,
		"monthly_promotions":  monthlyPromotions,
		"recent_transactions": latest,
	})
}
