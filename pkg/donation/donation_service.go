package donation

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"FeastForBeasts/internal/utils"
	"FeastForBeasts/internal/utils/storage"
	"FeastForBeasts/pkg/lifecycle"
	"FeastForBeasts/pkg/notification"
	"FeastForBeasts/pkg/reward"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

type (
	DonationService interface {
		CreateDonation(ctx context.Context, session domain.Session, req domain.DonationRequest) (*domain.Donation, error)
		GetUserDonations(ctx context.Context, session domain.Session, page, limit int) ([]*domain.Donation, int64, error)
		GetDonationByID(ctx context.Context, session domain.Session, id string) (*domain.Donation, error)
		UpdateDonationStatus(ctx context.Context, session domain.Session, id string, req domain.UpdateDonationStatusRequest) (*domain.Donation, error)
		AssignVolunteer(ctx context.Context, session domain.Session, id string, req domain.AssignVolunteerRequest) (*domain.Donation, error)
		GetDonationStatistics(ctx context.Context, session domain.Session) (*domain.DonationStatistics, error)
		UploadDonationPhoto(ctx context.Context, session domain.Session, id string, filename string, contentType string, body io.Reader) (*domain.DonationPhoto, error)

		// ReconcileRewards grants points for every delivered donation that has none yet.
		ReconcileRewards(ctx context.Context) (int, error)
	}

	// Rewards is the part of the rewards ledger the donation lifecycle drives.
	Rewards interface {
		Grant(ctx context.Context, donationID string, points int) (bool, error)
		Balance(ctx context.Context, userID string) (int, error)
	}

	donationService struct {
		store     DonationStore
		rewards   Rewards
		notifier  notification.Notifier
		s3        storage.AwsS3
		validator *validator.Validate
		sanitizer *bluemonday.Policy
		now       func() time.Time
	}
)

func NewDonationService(store DonationStore, rewards Rewards, notifier notification.Notifier, s3 storage.AwsS3, validator *validator.Validate) DonationService {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &donationService{
		store:     store,
		rewards:   rewards,
		notifier:  notifier,
		s3:        s3,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, session domain.Session, req domain.DonationRequest) (*domain.Donation, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	req.PickupLocation = s.sanitize(req.PickupLocation)
	req.Notes = s.sanitize(req.Notes)
	req.Quantity = req.Quantity.Round(3)
	if err := utils.ValidateStruct(s.validator, req); err != nil {
		return nil, err
	}

	donation := entities.Donation{
		ID:             uuid.NewString(),
		UserID:         session.UserID,
		FoodType:       req.DonationType,
		Quantity:       req.Quantity,
		QuantityUnit:   req.QuantityUnit,
		ExpiryDate:     req.ExpiryDate,
		PickupLocation: req.PickupLocation,
		Notes:          req.Notes,
		Status:         domain.StatusPending,
		SubmittedAt:    s.now().UTC(),
	}

	if err := s.store.Append(ctx, donation); err != nil {
		return nil, err
	}

	log.Infow("donation created", "donation_id", donation.ID, "user_id", donation.UserID)
	return ToDomainDonation(donation), nil
}

// GetUserDonations lists the caller's donations newest first. Admins see every donation.
func (s *donationService) GetUserDonations(ctx context.Context, session domain.Session, page, limit int) ([]*domain.Donation, int64, error) {
	if err := session.Validate(); err != nil {
		return nil, 0, err
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, 0, err
	}

	owned := records[:0]
	for _, d := range records {
		if session.IsAdmin() || d.UserID == session.UserID {
			owned = append(owned, d)
		}
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start > len(owned) {
		start = len(owned)
	}
	end := start + limit
	if end > len(owned) {
		end = len(owned)
	}

	result := make([]*domain.Donation, 0, end-start)
	for _, d := range owned[start:end] {
		result = append(result, ToDomainDonation(d))
	}
	return result, int64(len(owned)), nil
}

func (s *donationService) GetDonationByID(ctx context.Context, session domain.Session, id string) (*domain.Donation, error) {
	donation, err := s.getAuthorized(ctx, session, id)
	if err != nil {
		return nil, err
	}
	return ToDomainDonation(donation), nil
}

// UpdateDonationStatus moves the donation along the lifecycle. Admins drive every transition; an
// owner may only cancel. Reaching delivered credits the owner's points once. If that credit fails
// the call fails too, and repeating the delivered request retries the credit.
func (s *donationService) UpdateDonationStatus(ctx context.Context, session domain.Session, id string, req domain.UpdateDonationStatusRequest) (*domain.Donation, error) {
	if _, err := s.getAuthorized(ctx, session, id); err != nil {
		return nil, err
	}

	to := domain.DonationStatus(req.Status)
	if !to.Valid() {
		return nil, &domain.ValidationError{Fields: map[string]string{"status": "oneof=" + joinStatuses()}}
	}
	if !session.IsAdmin() && to != domain.StatusCancelled {
		return nil, domain.ErrUserNotAllowed
	}

	updated, err := s.store.Update(ctx, id, func(d entities.Donation) (entities.Donation, error) {
		return lifecycle.Transition(d, to)
	})
	var invalid *domain.InvalidTransitionError
	if errors.As(err, &invalid) && invalid.From == domain.StatusDelivered && to == domain.StatusDelivered {
		return s.retryDeliveredGrant(ctx, id, err)
	}
	if err != nil {
		return nil, err
	}

	log.Infow("donation status changed", "donation_id", id, "status", updated.Status, "by", session.UserID)

	if updated.Status == domain.StatusDelivered {
		if _, err := s.grantDelivered(ctx, updated); err != nil {
			return nil, err
		}
	}
	return ToDomainDonation(updated), nil
}

// retryDeliveredGrant answers a repeated delivered request. It succeeds only when it is the call
// that finally records the grant; otherwise the invalid transition is reported as usual.
func (s *donationService) retryDeliveredGrant(ctx context.Context, id string, transitionErr error) (*domain.Donation, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	created, err := s.grantDelivered(ctx, current)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, transitionErr
	}

	log.Infow("reward grant recovered", "donation_id", id)
	return ToDomainDonation(current), nil
}

func (s *donationService) AssignVolunteer(ctx context.Context, session domain.Session, id string, req domain.AssignVolunteerRequest) (*domain.Donation, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		return nil, domain.ErrUserNotAllowed
	}
	if err := utils.ValidateStruct(s.validator, req); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, func(d entities.Donation) (entities.Donation, error) {
		return lifecycle.AssignVolunteer(d, strings.TrimSpace(req.VolunteerID))
	})
	if err != nil {
		return nil, err
	}

	log.Infow("volunteer assigned", "donation_id", id, "volunteer_id", updated.AssignedVolunteerID)
	return ToDomainDonation(updated), nil
}

// GetDonationStatistics counts the caller's donations, or every donation for an admin. The points
// balance is always the caller's own.
func (s *donationService) GetDonationStatistics(ctx context.Context, session domain.Session) (*domain.DonationStatistics, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.DonationStatistics{
		DeliveredKilograms: decimal.Zero,
		DeliveredItems:     decimal.Zero,
	}
	for _, d := range records {
		if !session.IsAdmin() && d.UserID != session.UserID {
			continue
		}
		stats.TotalDonations++
		switch d.Status {
		case domain.StatusPending:
			stats.PendingDonations++
		case domain.StatusApproved, domain.StatusPickedUp:
			stats.ActiveDonations++
		case domain.StatusDelivered:
			stats.DeliveredDonations++
			if d.QuantityUnit == domain.UnitKilogram {
				stats.DeliveredKilograms = stats.DeliveredKilograms.Add(d.Quantity)
			} else {
				stats.DeliveredItems = stats.DeliveredItems.Add(d.Quantity)
			}
		case domain.StatusCancelled:
			stats.CancelledDonations++
		}
	}

	balance, err := s.rewards.Balance(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	stats.PointsBalance = balance

	return stats, nil
}

func (s *donationService) UploadDonationPhoto(ctx context.Context, session domain.Session, id string, filename string, contentType string, body io.Reader) (*domain.DonationPhoto, error) {
	if s.s3 == nil {
		return nil, domain.ErrDonationPhotoNotConfigured
	}
	if body == nil {
		return nil, domain.ErrDonationPhotoMissing
	}

	donation, err := s.getAuthorized(ctx, session, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("donations/%s/%s%s", donation.ID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	url, err := s.s3.UploadFile(ctx, key, body, contentType)
	if err != nil {
		return nil, err
	}

	return &domain.DonationPhoto{
		DonationID: donation.ID,
		URL:        url,
	}, nil
}

func (s *donationService) ReconcileRewards(ctx context.Context) (int, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	granted := 0
	for _, d := range records {
		if d.Status != domain.StatusDelivered {
			continue
		}
		created, err := s.rewards.Grant(ctx, d.ID, reward.PointsForDonation(d))
		if err != nil {
			return granted, fmt.Errorf("reconcile rewards for %s: %w", d.ID, err)
		}
		if created {
			granted++
		}
	}

	if granted > 0 {
		log.Infow("rewards reconciled", "granted", granted)
	}
	return granted, nil
}

// grantDelivered credits the owner. ReconcileRewards also picks up a failed grant on the next start.
func (s *donationService) grantDelivered(ctx context.Context, d entities.Donation) (bool, error) {
	points := reward.PointsForDonation(d)
	created, err := s.rewards.Grant(ctx, d.ID, points)
	if err != nil {
		log.Errorw("reward grant failed", "donation_id", d.ID, "error", err)
		return false, fmt.Errorf("%w: donation %s: %w", domain.ErrRewardGrantFailed, d.ID, err)
	}
	if created {
		s.notifier.DonationDelivered(ctx, d, points)
	}
	return created, nil
}

func (s *donationService) getAuthorized(ctx context.Context, session domain.Session, id string) (entities.Donation, error) {
	if err := session.Validate(); err != nil {
		return entities.Donation{}, err
	}

	donation, err := s.store.Get(ctx, id)
	if err != nil {
		return entities.Donation{}, err
	}
	if !session.IsAdmin() && donation.UserID != session.UserID {
		return entities.Donation{}, domain.ErrUnauthorizedDonationAccess
	}
	return donation, nil
}

// sanitize strips markup and keeps the text as typed. StrictPolicy escapes entities, which are
// decoded again so "&" is stored as "&" and not "&amp;".
func (s *donationService) sanitize(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(v)))
}

func joinStatuses() string {
	parts := make([]string, 0, len(domain.DonationStatuses))
	for _, st := range domain.DonationStatuses {
		parts = append(parts, string(st))
	}
	return strings.Join(parts, " ")
}

func ToDomainDonation(d entities.Donation) *domain.Donation {
	return &domain.Donation{
		ID:                  d.ID,
		UserID:              d.UserID,
		DonationType:        d.FoodType,
		Quantity:            d.Quantity,
		QuantityUnit:        d.QuantityUnit,
		ExpiryDate:          d.ExpiryDate,
		PickupLocation:      d.PickupLocation,
		Notes:               d.Notes,
		Status:              d.Status,
		SubmittedAt:         d.SubmittedAt,
		AssignedNgoID:       d.AssignedNgoID,
		AssignedNgoName:     d.AssignedNgoName,
		AssignedVolunteerID: d.AssignedVolunteerID,
	}
}
