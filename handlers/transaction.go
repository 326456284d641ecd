package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rewardify-backend/models"
	"rewardify-backend/rewards"
	"rewardify-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionHandler struct {
	DB *gorm.DB
}

type transactionItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gte=1"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	TaxRate     float64 `json:"tax_rate" binding:"gte=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

type createTransactionRequest struct {
	Phone              string                   `json:"phone" binding:"required"`
	CustomerName       string                   `json:"customer_name"`
	Type               models.TransactionType   `json:"type" binding:"required"`
	DiscountPercentage float64                  `json:"discount_percentage" binding:"gte=0,lte=100"`
	Description        string                   `json:"description"`
	Category           string                   `json:"category"`
	Items              []transactionItemRequest `json:"items" binding:"required,min=1,dive"`
}

func buildItems(reqs []transactionItemRequest) []models.TransactionItem {
	items := make([]models.TransactionItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, models.TransactionItem{
			Name:        r.Name,
			Quantity:    r.Quantity,
			Price:       r.Price,
			TaxRate:     r.TaxRate,
			TotalAmount: r.Price * float64(r.Quantity),
			Description: r.Description,
			Category:    r.Category,
		})
	}
	return items
}

// CreateTransaction records a sale, recomputes the amount from its items and
// evaluates the vendor's reward policy for the customer. The transaction row,
// the reward snapshot and the ledger append all commit or roll back together;
// the customer row is locked so concurrent sales cannot lose ledger entries.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	vendorID, exists := c.Get("vendor_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	vid := vendorID.(uuid.UUID)

	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction type"})
		return
	}

	items := buildItems(req.Items)
	totals := rewards.ComputeTotals(items, req.DiscountPercentage)

	var transaction models.Transaction
	var rewardResult rewards.Result

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("vendor_id = ? AND phone = ?", vid, req.Phone).
			First(&customer).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			customer = models.Customer{
				VendorID: vid,
				Phone:    req.Phone,
				Name:     req.CustomerName,
				Gender:   "NA",
				Rewards:  models.RewardLedger{},
				IsActive: true,
			}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		}

		transaction = models.Transaction{
			VendorID:           vid,
			CustomerID:         &customer.ID,
			Phone:              req.Phone,
			Type:               req.Type,
			DiscountPercentage: req.DiscountPercentage,
			Amount:             totals.Total,
			Description:        req.Description,
			Category:           req.Category,
			Items:              items,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		rewardResult, err = rewards.Calculate(tx, vid, totals.Total, transaction.ID)
		if err != nil {
			return err
		}

		snapshot, err := rewardResult.Snapshot()
		if err != nil {
			return err
		}
		if err := tx.Model(&transaction).Update("reward", datatypes.JSON(snapshot)).Error; err != nil {
			return err
		}

		return rewards.AppendToLedger(tx, &customer, vid, rewardResult)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transaction": transaction,
		"totals":      totals,
		"reward":      rewardResult,
	})
}

func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")

	query := h.DB.Where("vendor_id = ?", vendorID)

	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone = ?", phone)
	}
	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			query = query.Where("created_at <= ?", t)
		}
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
	query.Model(&models.Transaction{}).Count(&total)

	var transactions []models.Transaction
	if err := query.Preload("Items").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	id := c.Param("id")

	var transaction models.Transaction
	if err := h.DB.Preload("Items").Preload("Customer").
		Where("id = ? AND vendor_id = ?", id, vendorID).
		First(&transaction).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction replaces a transaction's items and recomputes its amount.
// The previous values are captured in an audit row first. The reward already
// granted for the original sale stays in the ledger untouched.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	vid := vendorID.(uuid.UUID)
	id := c.Param("id")

	var req struct {
		Phone              *string                  `json:"phone"`
		Type               models.TransactionType   `json:"type"`
		DiscountPercentage *float64                 `json:"discount_percentage"`
		Description        *string                  `json:"description"`
		Category           *string                  `json:"category"`
		Items              []transactionItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Type != "" && !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction type"})
		return
	}

	var transaction models.Transaction
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").
			Where("id = ? AND vendor_id = ?", id, vid).
			First(&transaction).Error; err != nil {
			return err
		}

		original, err := json.Marshal(transaction)
		if err != nil {
			return err
		}
		audit := models.TransactionAudit{
			TransactionID:  transaction.ID,
			VendorID:       vid,
			OriginalValues: datatypes.JSON(original),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}

		if req.Type != "" {
			transaction.Type = req.Type
		}
		if req.DiscountPercentage != nil {
			transaction.DiscountPercentage = *req.DiscountPercentage
		}
		if req.Description != nil {
			transaction.Description = *req.Description
		}
		if req.Category != nil {
			transaction.Category = *req.Category
		}

		phoneChanged := req.Phone != nil && *req.Phone != transaction.Phone
		if phoneChanged {
			transaction.Phone = *req.Phone
		}

		if len(req.Items) > 0 {
			if err := tx.Where("transaction_id = ?", transaction.ID).
				Delete(&models.TransactionItem{}).Error; err != nil {
				return err
			}
			transaction.Items = buildItems(req.Items)
			for i := range transaction.Items {
				transaction.Items[i].TransactionID = transaction.ID
			}
			if err := tx.Create(&transaction.Items).Error; err != nil {
				return err
			}
		}

		transaction.Amount = rewards.TotalAmount(transaction.Items, transaction.DiscountPercentage)

		updates := map[string]interface{}{
			"type":                transaction.Type,
			"discount_percentage": transaction.DiscountPercentage,
			"description":         transaction.Description,
			"category":            transaction.Category,
			"amount":              transaction.Amount,
		}

		// Re-pointing the transaction at a different customer grants the
		// reward to them; entries already in the old customer's ledger stay.
		if phoneChanged {
			var customer models.Customer
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("vendor_id = ? AND phone = ?", vid, transaction.Phone).
				First(&customer).Error
			if err == gorm.ErrRecordNotFound {
				customer = models.Customer{
					VendorID: vid,
					Phone:    transaction.Phone,
					Gender:   "NA",
					Rewards:  models.RewardLedger{},
					IsActive: true,
				}
				err = tx.Create(&customer).Error
			}
			if err != nil {
				return err
			}

			rewardResult, err := rewards.Calculate(tx, vid, transaction.Amount, transaction.ID)
			if err != nil {
				return err
			}
			snapshot, err := rewardResult.Snapshot()
			if err != nil {
				return err
			}
			if err := rewards.AppendToLedger(tx, &customer, vid, rewardResult); err != nil {
				return err
			}

			transaction.CustomerID = &customer.ID
			updates["phone"] = transaction.Phone
			updates["customer_id"] = customer.ID
			updates["reward"] = datatypes.JSON(snapshot)
		}

		return tx.Model(&transaction).Updates(updates).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	vendorID, _ := c.Get("vendor_id")
	vid := vendorID.(uuid.UUID)
	id := c.Param("id")

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.Preload("Items").
			Where("id = ? AND vendor_id = ?", id, vid).
			First(&transaction).Error; err != nil {
			return err
		}

		original, err := json.Marshal(transaction)
		if err != nil {
			return err
		}
		audit := models.TransactionAudit{
			TransactionID:  transaction.ID,
			VendorID:       vid,
			OriginalValues: datatypes.JSON(original),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}

		// Stale invoice references must stop resolving once the transaction
		// is gone.
		if err := tx.Where("transaction_id = ?", transaction.ID).
			Delete(&models.InvoiceGeneration{}).Error; err != nil {
			return err
		}

		return tx.Delete(&transaction).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
