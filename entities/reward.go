package entities

import (
	"time"
)

// RewardLedgerEntry is one row of the append-only points ledger. Grants carry the donation id
// (unique, so a donation is credited at most once); redemptions carry the reward id.
type RewardLedgerEntry struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	UserID      string    `gorm:"size:64;not null;index;uniqueIndex:idx_ledger_user_reward" json:"user_id"`
	DonationID  *string   `gorm:"size:64;uniqueIndex" json:"donation_id,omitempty"`
	RewardID    *string   `gorm:"size:32;uniqueIndex:idx_ledger_user_reward" json:"reward_id,omitempty"`
	Type        string    `gorm:"size:16;not null" json:"type"` // Grant, Redeem
	Points      int       `gorm:"not null" json:"points"`      // negative for redemptions
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
