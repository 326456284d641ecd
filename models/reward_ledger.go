package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RewardEntry is one granted reward in a customer's ledger.
type RewardEntry struct {
	Type          string                 `json:"type"`
	Amount        float64                `json:"amount"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	TransactionID string                 `json:"transactionId,omitempty"`
	ExpiresAt     *time.Time             `json:"expiresAt"`
	LastUpdated   time.Time              `json:"lastUpdated"`
}

// Expired reports whether the entry's expiry has passed. Entries without an
// expiry never expire.
func (e RewardEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && e.ExpiresAt.Before(now)
}

// RewardLedger maps a vendor id to the append-only sequence of rewards that
// vendor has granted to the customer. It is stored as a single jsonb column
// on the customer row. Older rows may hold a bare object instead of an array
// under a vendor key; Scan normalizes that shape to a one-element sequence so
// callers only ever see sequences.
type RewardLedger map[string][]RewardEntry

// Append adds an entry to the vendor's bucket, creating the bucket if absent.
// Entries are never merged or removed.
func (l RewardLedger) Append(vendorID string, entry RewardEntry) {
	l[vendorID] = append(l[vendorID], entry)
}

// Value implements driver.Valuer.
func (l RewardLedger) Value() (driver.Value, error) {
	if l == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *RewardLedger) Scan(value interface{}) error {
	if value == nil {
		*l = RewardLedger{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported reward ledger column type %T", value)
	}

	if len(data) == 0 {
		*l = RewardLedger{}
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid reward ledger: %w", err)
	}

	ledger := make(RewardLedger, len(raw))
	for vendorID, bucket := range raw {
		var entries []RewardEntry
		if err := json.Unmarshal(bucket, &entries); err != nil {
			// Legacy shape: a single object instead of a sequence.
			var single RewardEntry
			if err := json.Unmarshal(bucket, &single); err != nil {
				return fmt.Errorf("invalid reward bucket for vendor %s: %w", vendorID, err)
			}
			entries = []RewardEntry{single}
		}
		ledger[vendorID] = entries
	}

	*l = ledger
	return nil
}

// GormDataType tells GORM how to map the column.
func (RewardLedger) GormDataType() string {
	return "jsonb"
}
