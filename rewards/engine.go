// Package rewards evaluates a vendor's reward policy against a transaction
// total and folds the outcome into the customer's per-vendor reward ledger.
package rewards

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"rewardify-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result is the outcome of evaluating a reward policy for one transaction.
type Result struct {
	RewardAmount  float64                 `json:"rewardAmount"`
	RewardType    models.RewardPolicyType `json:"rewardType"`
	Description   string                  `json:"description"`
	TransactionID uuid.UUID               `json:"transactionId,omitempty"`
	ExpiresAt     *time.Time              `json:"expiresAt"`
	Metadata      map[string]interface{}  `json:"metadata,omitempty"`
}

func noReward(transactionID uuid.UUID) Result {
	return Result{
		RewardAmount:  0,
		RewardType:    models.PolicyNone,
		TransactionID: transactionID,
		Description:   "No rewards applicable",
	}
}

// Calculate looks up the vendor's active reward policy and computes the
// reward earned on totalAmount. It performs no writes: an absent policy or
// type NONE yields a zero result, and a CUSTOM policy with unparseable rules
// degrades to a zero reward instead of failing. Amounts are not rounded.
func Calculate(db *gorm.DB, vendorID uuid.UUID, totalAmount float64, transactionID uuid.UUID) (Result, error) {
	var policy models.RewardPolicy
	err := db.Where("vendor_id = ? AND is_active = ?", vendorID, true).First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noReward(transactionID), nil
		}
		return Result{}, err
	}

	if policy.Type == models.PolicyNone {
		return noReward(transactionID), nil
	}

	result := Result{
		RewardType:    policy.Type,
		TransactionID: transactionID,
	}

	switch policy.Type {
	case models.PolicyPercentageDiscount:
		result.RewardAmount = totalAmount * policy.Config.Percentage / 100
		result.Description = fmt.Sprintf("%v%% instant discount", policy.Config.Percentage)
		result.Metadata = map[string]interface{}{"percentage": policy.Config.Percentage}

	case models.PolicyFixedDiscount, models.PolicyFlatDiscount:
		result.RewardAmount = policy.Config.Amount
		result.Description = fmt.Sprintf("₹%v instant discount", policy.Config.Amount)
		result.Metadata = map[string]interface{}{"amount": policy.Config.Amount}

	case models.PolicyPercentageCredit:
		result.RewardAmount = totalAmount * policy.Config.Percentage / 100
		result.Description = fmt.Sprintf("%v%% store credit", policy.Config.Percentage)
		result.Metadata = map[string]interface{}{"percentage": policy.Config.Percentage}

	case models.PolicyFixedCredit:
		result.RewardAmount = policy.Config.Amount
		result.Description = fmt.Sprintf("₹%v store credit", policy.Config.Amount)
		result.Metadata = map[string]interface{}{"amount": policy.Config.Amount}

	case models.PolicyPointBased:
		result.RewardAmount = totalAmount * policy.Config.PointsPerRupee
		result.Description = fmt.Sprintf("%v points earned", result.RewardAmount)
		// rupeesPerPoint is carried along for later redemption math.
		result.Metadata = map[string]interface{}{
			"pointsPerRupee": policy.Config.PointsPerRupee,
			"rupeesPerPoint": policy.Config.RupeesPerPoint,
		}

	case models.PolicyCustom:
		var rules interface{}
		if err := json.Unmarshal([]byte(policy.Config.Rules), &rules); err != nil {
			log.Printf("Invalid custom reward rules for vendor %s: %v", vendorID, err)
			result.RewardAmount = 0
			result.Description = "Invalid custom rules"
			break
		}
		// Custom rule evaluation is an extension point; a parsed rule set
		// currently grants nothing.
		result.RewardAmount = 0
		result.Description = "Custom reward applied"
		result.Metadata = map[string]interface{}{"rules": rules}
	}

	if policy.Expiry != nil && *policy.Expiry > 0 {
		expiresAt := time.Now().Add(time.Duration(*policy.Expiry) * 24 * time.Hour)
		result.ExpiresAt = &expiresAt
	}

	return result, nil
}

// Entry converts the result into a ledger entry stamped at now.
func (r Result) Entry(now time.Time) models.RewardEntry {
	entry := models.RewardEntry{
		Type:        string(r.RewardType),
		Amount:      r.RewardAmount,
		Metadata:    r.Metadata,
		ExpiresAt:   r.ExpiresAt,
		LastUpdated: now,
	}
	if r.TransactionID != uuid.Nil {
		entry.TransactionID = r.TransactionID.String()
	}
	return entry
}

// Snapshot renders the reward in the shape stored on the transaction row.
func (r Result) Snapshot() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"amount":      r.RewardAmount,
		"type":        r.RewardType,
		"description": r.Description,
		"expiresAt":   r.ExpiresAt,
	})
}

// AppendToLedger appends the reward to the customer's bucket for vendorID and
// persists the whole ledger. It is a no-op when the reward amount is zero.
// Entries are only ever appended; legacy single-object buckets are normalized
// to sequences when the ledger is scanned from the database.
func AppendToLedger(db *gorm.DB, customer *models.Customer, vendorID uuid.UUID, result Result) error {
	if result.RewardAmount <= 0 {
		return nil
	}

	if customer.Rewards == nil {
		customer.Rewards = models.RewardLedger{}
	}
	customer.Rewards.Append(vendorID.String(), result.Entry(time.Now()))

	return db.Model(&models.Customer{}).
		Where("id = ?", customer.ID).
		Update("rewards", customer.Rewards).Error
}
