package donation

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const metaKeyInitialized = "donations.initialized"

type (
	DonationRepository interface {
		GetAllDonations(ctx context.Context) ([]entities.Donation, error)
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		UpdateDonation(ctx context.Context, donation *entities.Donation) error

		// InitializeOnce runs seed inside a transaction the first time the store is ever opened.
		InitializeOnce(ctx context.Context, seed []entities.Donation) (bool, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) GetAllDonations(ctx context.Context) ([]entities.Donation, error) {
	var donations []entities.Donation
	if err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Order("id DESC").
		Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("load donations: %w", err)
	}
	return donations, nil
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &domain.DuplicateIDError{Kind: "donation", ID: donation.ID}
		}
		return fmt.Errorf("create donation %s: %w", donation.ID, err)
	}
	return nil
}

// UpdateDonation overwrites every column of an existing row, zero values included.
func (r *donationRepository) UpdateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entities.Donation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", donation.ID).
			First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.NotFoundError{Kind: "donation", ID: donation.ID}
			}
			return fmt.Errorf("lock donation %s: %w", donation.ID, err)
		}

		if err := tx.Model(&entities.Donation{}).
			Where("id = ?", donation.ID).
			Select("*").
			Omit("id", "user_id", "submitted_at").
			Updates(donation).Error; err != nil {
			return fmt.Errorf("update donation %s: %w", donation.ID, err)
		}
		return nil
	})
}

func (r *donationRepository) InitializeOnce(ctx context.Context, seed []entities.Donation) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meta entities.StoreMeta
		err := tx.Where(&entities.StoreMeta{Key: metaKeyInitialized}).First(&meta).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&entities.Donation{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 && len(seed) > 0 {
			if err := tx.Create(&seed).Error; err != nil {
				return err
			}
			seeded = true
		}

		return tx.Create(&entities.StoreMeta{Key: metaKeyInitialized, Value: "true"}).Error
	})
	if err != nil {
		return false, fmt.Errorf("initialize donation store: %w", err)
	}
	return seeded, nil
}
