package reward

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RewardRepository interface {
		// CreateGrant inserts a donation grant unless one already exists for that donation.
		CreateGrant(ctx context.Context, entry *entities.RewardLedgerEntry) (bool, error)
		CreateRedemption(ctx context.Context, entry *entities.RewardLedgerEntry) error

		GetUserBalance(ctx context.Context, userID string) (int, error)
		GetUserPointsStats(ctx context.Context, userID string) (map[string]int, error)
		GetUserLedgerEntries(ctx context.Context, userID string, page, limit int) ([]*entities.RewardLedgerEntry, int64, error)
		GetGrantByDonationID(ctx context.Context, donationID string) (*entities.RewardLedgerEntry, error)
		HasRedeemedReward(ctx context.Context, userID, rewardID string) (bool, error)
		CountUserGrants(ctx context.Context, userID string) (int64, error)

		WithinTransaction(ctx context.Context, fn func(repo RewardRepository) error) error
	}

	rewardRepository struct {
		db *gorm.DB
	}
)

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{
		db: db,
	}
}

func (r *rewardRepository) WithinTransaction(ctx context.Context, fn func(repo RewardRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&rewardRepository{db: tx})
	})
}

func (r *rewardRepository) CreateGrant(ctx context.Context, entry *entities.RewardLedgerEntry) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry)
	if result.Error != nil {
		return false, fmt.Errorf("create grant: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *rewardRepository) CreateRedemption(ctx context.Context, entry *entities.RewardLedgerEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrRewardAlreadyRedeemed
		}
		return fmt.Errorf("create redemption: %w", err)
	}
	return nil
}

// GetUserBalance folds every ledger entry of the user; there is no stored running balance.
func (r *rewardRepository) GetUserBalance(ctx context.Context, userID string) (int, error) {
	var balance int
	if err := r.db.WithContext(ctx).
		Model(&entities.RewardLedgerEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Row().Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *rewardRepository) GetUserPointsStats(ctx context.Context, userID string) (map[string]int, error) {
	// Get total granted
	var totalGranted int
	grantQuery := r.db.WithContext(ctx).
		Model(&entities.RewardLedgerEntry{}).
		Where("user_id = ? AND type = ?", userID, domain.LedgerEntryGrant).
		Select("COALESCE(SUM(points), 0) as total")
	if err := grantQuery.Row().Scan(&totalGranted); err != nil {
		return nil, err
	}

	// Get total redeemed
	var totalRedeemed int
	redeemQuery := r.db.WithContext(ctx).
		Model(&entities.RewardLedgerEntry{}).
		Where("user_id = ? AND type = ?", userID, domain.LedgerEntryRedeem).
		Select("COALESCE(SUM(points), 0) as total")
	if err := redeemQuery.Row().Scan(&totalRedeemed); err != nil {
		return nil, err
	}
	totalRedeemed = -totalRedeemed // Convert to positive value

	return map[string]int{
		"balance":        totalGranted - totalRedeemed,
		"total_granted":  totalGranted,
		"total_redeemed": totalRedeemed,
	}, nil
}

func (r *rewardRepository) GetUserLedgerEntries(ctx context.Context, userID string, page, limit int) ([]*entities.RewardLedgerEntry, int64, error) {
	var entries []*entities.RewardLedgerEntry
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.RewardLedgerEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, count, nil
}

func (r *rewardRepository) GetGrantByDonationID(ctx context.Context, donationID string) (*entities.RewardLedgerEntry, error) {
	var entry entities.RewardLedgerEntry
	if err := r.db.WithContext(ctx).
		Where("donation_id = ?", donationID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *rewardRepository) HasRedeemedReward(ctx context.Context, userID, rewardID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RewardLedgerEntry{}).
		Where("user_id = ? AND reward_id = ?", userID, rewardID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *rewardRepository) CountUserGrants(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RewardLedgerEntry{}).
		Where("user_id = ? AND type = ?", userID, domain.LedgerEntryGrant).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
