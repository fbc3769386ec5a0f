package profile

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"FeastForBeasts/internal/utils"
	"context"
	"errors"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

type (
	ProfileService interface {
		GetProfile(ctx context.Context, session domain.Session) (*domain.Profile, error)
		UpdateProfile(ctx context.Context, session domain.Session, req domain.UpdateProfileRequest) (*domain.Profile, error)
		GetContact(ctx context.Context, userID string) (domain.Profile, error)
	}

	profileService struct {
		profileRepository ProfileRepository
		validator         *validator.Validate
		sanitizer         *bluemonday.Policy
	}
)

func NewProfileService(profileRepository ProfileRepository, validator *validator.Validate) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		validator:         validator,
		sanitizer:         bluemonday.StrictPolicy(),
	}
}

// GetProfile returns the caller's profile, creating the default one on first access.
func (s *profileService) GetProfile(ctx context.Context, session domain.Session) (*domain.Profile, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.getOrCreate(ctx, session)
	if err != nil {
		return nil, err
	}
	return toDomainProfile(profile), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, session domain.Session, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(s.validator, req); err != nil {
		return nil, err
	}

	profile, err := s.getOrCreate(ctx, session)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = s.clean(*req.Name)
	}
	if req.Email != nil {
		profile.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		profile.Phone = s.clean(*req.Phone)
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}

	if profile.Name == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"name": "required"}}
	}

	if err := s.profileRepository.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return toDomainProfile(profile), nil
}

// GetContact is used for notifications. A user without a stored profile gets the defaults, which
// carry no email.
func (s *profileService) GetContact(ctx context.Context, userID string) (domain.Profile, error) {
	profile, err := s.profileRepository.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return *toDomainProfile(defaultProfile(domain.Session{UserID: userID})), nil
		}
		return domain.Profile{}, err
	}
	return *toDomainProfile(profile), nil
}

func (s *profileService) getOrCreate(ctx context.Context, session domain.Session) (*entities.Profile, error) {
	profile, err := s.profileRepository.GetProfile(ctx, session.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.profileRepository.CreateProfile(ctx, defaultProfile(session))
}

func (s *profileService) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(v)))
}

func defaultProfile(session domain.Session) *entities.Profile {
	role := session.Role
	if role == "" {
		role = domain.RoleDonor
	}
	return &entities.Profile{
		UserID:    session.UserID,
		Name:      domain.DefaultProfileName,
		AvatarURL: domain.DefaultProfileAvatar,
		Role:      role,
	}
}

func toDomainProfile(profile *entities.Profile) *domain.Profile {
	return &domain.Profile{
		UserID:    profile.UserID,
		Name:      profile.Name,
		Email:     profile.Email,
		Phone:     profile.Phone,
		AvatarURL: profile.AvatarURL,
		Role:      profile.Role,
	}
}
