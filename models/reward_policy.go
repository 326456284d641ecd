package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardPolicyType string

const (
	PolicyPercentageDiscount RewardPolicyType = "PERCENTAGE_DISCOUNT"
	PolicyFixedDiscount      RewardPolicyType = "FIXED_DISCOUNT"
	PolicyFlatDiscount       RewardPolicyType = "FLAT_DISCOUNT"
	PolicyPercentageCredit   RewardPolicyType = "PERCENTAGE_CREDIT"
	PolicyFixedCredit        RewardPolicyType = "FIXED_CREDIT"
	PolicyPointBased         RewardPolicyType = "POINT_BASED"
	PolicyCustom             RewardPolicyType = "CUSTOM"
	PolicyNone               RewardPolicyType = "NONE"
)

func (t RewardPolicyType) Valid() bool {
	switch t {
	case PolicyPercentageDiscount, PolicyFixedDiscount, PolicyFlatDiscount,
		PolicyPercentageCredit, PolicyFixedCredit, PolicyPointBased,
		PolicyCustom, PolicyNone:
		return true
	}
	return false
}

// requiresExpiry reports whether the policy type grants a reward that must
// carry an expiry (credits and points expire; instant discounts do not).
func (t RewardPolicyType) requiresExpiry() bool {
	switch t {
	case PolicyPercentageCredit, PolicyFixedCredit, PolicyPointBased:
		return true
	}
	return false
}

// PolicyConfig is the type-dependent parameter bag of a reward policy.
// NormalizeConfig strips the fields the policy type does not use, so a stored
// config only ever carries the parameters its type needs.
type PolicyConfig struct {
	Percentage     float64 `json:"percentage,omitempty"`
	Amount         float64 `json:"amount,omitempty"`
	PointsPerRupee float64 `json:"pointsPerRupee,omitempty"`
	RupeesPerPoint float64 `json:"rupeesPerPoint,omitempty"`
	Rules          string  `json:"rules,omitempty"`
}

func (c PolicyConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *PolicyConfig) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*c = PolicyConfig{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported policy config column type %T", value)
	}
	if len(data) == 0 {
		*c = PolicyConfig{}
		return nil
	}
	return json.Unmarshal(data, c)
}

func (PolicyConfig) GormDataType() string {
	return "jsonb"
}

// RewardPolicy is a vendor's reward rule set. At most one row per vendor is
// active at a time; updates replace config and expiry in place.
type RewardPolicy struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor    Vendor           `gorm:"foreignKey:VendorID" json:"-"`
	Name      string           `json:"name"`
	Type      RewardPolicyType `gorm:"not null" json:"type"`
	Config    PolicyConfig     `gorm:"type:jsonb" json:"config"`
	Expiry    *int             `json:"expiry"` // days until a granted reward expires
	ExpiresAt *time.Time       `json:"expires_at"`
	IsActive  bool             `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (p *RewardPolicy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DefaultExpiryDays applies when a credit or point policy is saved without an
// explicit expiry.
const DefaultExpiryDays = 365

// NormalizeConfig validates the policy type and reduces config and expiry to
// exactly what that type uses. Discount types never carry an expiry; credit
// and point types always do.
func NormalizeConfig(policyType RewardPolicyType, config PolicyConfig, expiry *int) (PolicyConfig, *int, error) {
	if !policyType.Valid() {
		return PolicyConfig{}, nil, fmt.Errorf("unknown reward policy type %q", policyType)
	}

	var clean PolicyConfig
	var expiryDays *int

	switch policyType {
	case PolicyPercentageDiscount, PolicyPercentageCredit:
		if config.Percentage < 0 || config.Percentage > 100 {
			return PolicyConfig{}, nil, fmt.Errorf("percentage must be between 0 and 100")
		}
		clean.Percentage = config.Percentage
	case PolicyFixedDiscount, PolicyFixedCredit, PolicyFlatDiscount:
		if config.Amount < 0 {
			return PolicyConfig{}, nil, fmt.Errorf("amount must not be negative")
		}
		clean.Amount = config.Amount
	case PolicyPointBased:
		if config.PointsPerRupee < 0 || config.RupeesPerPoint < 0 {
			return PolicyConfig{}, nil, fmt.Errorf("point rates must not be negative")
		}
		clean.PointsPerRupee = config.PointsPerRupee
		clean.RupeesPerPoint = config.RupeesPerPoint
	case PolicyCustom:
		clean.Rules = config.Rules
		expiryDays = expiry
	case PolicyNone:
		// empty config
	}

	if policyType.requiresExpiry() {
		if expiry != nil && *expiry > 0 {
			expiryDays = expiry
		} else {
			days := DefaultExpiryDays
			expiryDays = &days
		}
	}

	return clean, expiryDays, nil
}
