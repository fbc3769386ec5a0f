package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRewards       = "rewards retrieved successfully"
	MessageSuccessGetBalance       = "points balance retrieved successfully"
	MessageSuccessGetLedgerHistory = "points history retrieved successfully"
	MessageSuccessRedeemReward     = "reward redeemed successfully"

	MessageFailedGetRewards       = "failed to retrieve rewards"
	MessageFailedGetBalance       = "failed to retrieve points balance"
	MessageFailedGetLedgerHistory = "failed to retrieve points history"
	MessageFailedRedeemReward     = "failed to redeem reward"

	ErrInvalidReward         = errors.New("invalid reward")
	ErrRewardAlreadyRedeemed = errors.New("reward already redeemed")
	ErrInvalidPoints         = errors.New("points must be positive")
	ErrRewardGrantFailed     = errors.New("donation delivered but reward grant failed")
)

const (
	LedgerEntryGrant  = "Grant"
	LedgerEntryRedeem = "Redeem"

	// Points granted for a delivered donation: a flat base plus a bonus per whole unit of quantity.
	REWARD_POINTS_PER_DONATION = 50
	REWARD_POINTS_PER_UNIT     = 5
	REWARD_MAX_UNIT_BONUS      = 100
)

type (
	Reward struct {
		ID                string `json:"id"`
		Name              string `json:"name"`
		Description       string `json:"description"`
		PointsRequired    int    `json:"points_required"`
		RequiredDonations int    `json:"required_donations,omitempty"`
	}

	LedgerEntry struct {
		ID          string    `json:"id"`
		UserID      string    `json:"user_id"`
		DonationID  string    `json:"donation_id,omitempty"`
		RewardID    string    `json:"reward_id,omitempty"`
		Type        string    `json:"type"`
		Points      int       `json:"points"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"created_at"`
	}

	PointsSummary struct {
		Balance       int `json:"balance"`
		TotalGranted  int `json:"total_granted"`
		TotalRedeemed int `json:"total_redeemed"`
	}

	RedeemRewardRequest struct {
		RewardID string `json:"reward_id" validate:"required"`
	}
)

// RewardCatalog lists the rewards a donor can redeem. Zero-point entries are achievements.
var RewardCatalog = []Reward{
	{ID: "REW001", Name: "Eco Warrior Badge", Description: "Awarded for 5 successful donations.", PointsRequired: 0, RequiredDonations: 5},
	{ID: "REW002", Name: "$5 Coffee Voucher", Description: "Redeemable at local partner cafes.", PointsRequired: 500},
	{ID: "REW003", Name: "Plant a Tree Certificate", Description: "We'll plant a tree in your name.", PointsRequired: 1000},
	{ID: "REW004", Name: "Reusable Shopping Bag", Description: "A stylish FeastForBeasts shopping bag.", PointsRequired: 250},
}

func FindReward(id string) (Reward, bool) {
	for _, r := range RewardCatalog {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}
