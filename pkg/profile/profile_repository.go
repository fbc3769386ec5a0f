package profile

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ProfileRepository interface {
		GetProfile(ctx context.Context, userID string) (*entities.Profile, error)
		// CreateProfile inserts the profile unless the user already has one, returning the stored row.
		CreateProfile(ctx context.Context, profile *entities.Profile) (*entities.Profile, error)
		UpdateProfile(ctx context.Context, profile *entities.Profile) error
	}

	profileRepository struct {
		db *gorm.DB
	}
)

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID string) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Kind: "profile", ID: userID}
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *entities.Profile) (*entities.Profile, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(profile).Error; err != nil {
		return nil, err
	}
	return r.GetProfile(ctx, profile.UserID)
}

func (r *profileRepository) UpdateProfile(ctx context.Context, profile *entities.Profile) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Profile{}).
		Where("user_id = ?", profile.UserID).
		Select("name", "email", "phone", "avatar_url", "updated_at").
		Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &domain.NotFoundError{Kind: "profile", ID: profile.UserID}
	}
	return nil
}
