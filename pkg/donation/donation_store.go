package donation

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
)

var errImmutableField = errors.New("mutation changed an immutable donation field")

type (
	// Mutator computes the next version of a donation. Returning an error aborts the update and
	// leaves the stored record untouched.
	Mutator func(entities.Donation) (entities.Donation, error)

	// DonationStore is the only path through which donation records are read or changed.
	DonationStore interface {
		Load(ctx context.Context) ([]entities.Donation, error)
		Get(ctx context.Context, id string) (entities.Donation, error)
		Append(ctx context.Context, donation entities.Donation) error
		Update(ctx context.Context, id string, mutate Mutator) (entities.Donation, error)
	}

	donationStore struct {
		repository DonationRepository

		// writeMu serializes mutations end to end (mutator, flush, cache swap).
		writeMu sync.Mutex

		mu      sync.RWMutex
		records []entities.Donation // newest submission first
	}
)

// NewDonationStore loads every persisted record into memory. seed is written only if the
// underlying storage has never been initialized before.
func NewDonationStore(ctx context.Context, repository DonationRepository, seed []entities.Donation) (DonationStore, error) {
	seeded, err := repository.InitializeOnce(ctx, seed)
	if err != nil {
		return nil, err
	}
	if seeded {
		log.Infow("donation store seeded", "records", len(seed))
	}

	records, err := repository.GetAllDonations(ctx)
	if err != nil {
		return nil, err
	}
	log.Infow("donation store loaded", "records", len(records))

	return &donationStore{
		repository: repository,
		records:    records,
	}, nil
}

func (s *donationStore) Load(ctx context.Context) ([]entities.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Donation, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *donationStore) Get(ctx context.Context, id string) (entities.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return entities.Donation{}, &domain.NotFoundError{Kind: "donation", ID: id}
	}
	return s.records[i], nil
}

func (s *donationStore) Append(ctx context.Context, donation entities.Donation) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	exists := s.indexOf(donation.ID) >= 0
	s.mu.RUnlock()
	if exists {
		return &domain.DuplicateIDError{Kind: "donation", ID: donation.ID}
	}

	if err := s.repository.CreateDonation(ctx, &donation); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := sort.Search(len(s.records), func(i int) bool {
		return newerFirst(donation, s.records[i])
	})
	s.records = append(s.records, entities.Donation{})
	copy(s.records[i+1:], s.records[i:])
	s.records[i] = donation
	return nil
}

func (s *donationStore) Update(ctx context.Context, id string, mutate Mutator) (entities.Donation, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	i := s.indexOf(id)
	var current entities.Donation
	if i >= 0 {
		current = s.records[i]
	}
	s.mu.RUnlock()
	if i < 0 {
		return entities.Donation{}, &domain.NotFoundError{Kind: "donation", ID: id}
	}

	next, err := mutate(current)
	if err != nil {
		return current, err
	}
	if next.ID != current.ID || next.UserID != current.UserID || !next.SubmittedAt.Equal(current.SubmittedAt) {
		return current, errImmutableField
	}
	if next.Equal(current) {
		return current, nil
	}

	if err := s.repository.UpdateDonation(ctx, &next); err != nil {
		log.Errorw("donation flush failed", "donation_id", id, "error", err)
		return current, err
	}

	s.mu.Lock()
	s.records[i] = next
	s.mu.Unlock()
	return next, nil
}

func (s *donationStore) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// newerFirst orders by submission time descending, then id descending, matching GetAllDonations.
func newerFirst(a, b entities.Donation) bool {
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.After(b.SubmittedAt)
	}
	return a.ID > b.ID
}

// DefaultSeed is the history shown to a brand new installation.
func DefaultSeed() []entities.Donation {
	return []entities.Donation{
		{
			ID:                  "DON_HIST_002",
			UserID:              "user1",
			FoodType:            domain.DonationTypeCannedGoods,
			Quantity:            decimal.NewFromInt(24),
			QuantityUnit:        domain.UnitItems,
			ExpiryDate:          "2025-01-15",
			PickupLocation:      "456 Oak Ave, Anytown",
			Status:              domain.StatusPickedUp,
			SubmittedAt:         time.Date(2024, 7, 15, 14, 30, 0, 0, time.UTC),
			AssignedNgoID:       "ngo-community-kitchen",
			AssignedNgoName:     "Community Kitchen",
			AssignedVolunteerID: "vol-jane",
		},
		{
			ID:                  "DON_HIST_001",
			UserID:              "user1",
			FoodType:            domain.DonationTypeCookedFood,
			Quantity:            decimal.NewFromInt(5),
			QuantityUnit:        domain.UnitKilogram,
			ExpiryDate:          "2024-07-10",
			PickupLocation:      "123 Main St, Anytown",
			Status:              domain.StatusDelivered,
			SubmittedAt:         time.Date(2024, 7, 8, 10, 0, 0, 0, time.UTC),
			AssignedNgoID:       "ngo-foodlink",
			AssignedNgoName:     "FoodLink",
			AssignedVolunteerID: "vol-john",
		},
	}
}
