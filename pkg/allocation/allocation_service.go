// Package allocation runs the two-phase NGO matching for a donation: RequestCandidates asks the
// recommendation service for ranked NGOs, CommitAssignment binds one of them to the donation.
package allocation

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"FeastForBeasts/pkg/donation"
	"FeastForBeasts/pkg/lifecycle"
	"FeastForBeasts/pkg/notification"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

type (
	// Recommender is the external recommendation service. It returns candidates in ranked order.
	Recommender interface {
		Recommend(ctx context.Context, req domain.RecommendationRequest) ([]domain.RecommendedNGO, error)
	}

	AllocationService interface {
		RequestCandidates(ctx context.Context, session domain.Session, donationID string) (*domain.CandidateList, error)
		CommitAssignment(ctx context.Context, session domain.Session, donationID string, candidate domain.NGOCandidate) (*domain.Donation, error)
		// CommitCandidate commits a candidate from the latest successful RequestCandidates by id.
		CommitCandidate(ctx context.Context, session domain.Session, donationID string, candidateID string) (*domain.Donation, error)
		State(donationID string) domain.AllocationState
	}

	session struct {
		state      domain.AllocationState
		generation uint64
		candidates []domain.NGOCandidate
	}

	allocationService struct {
		store       donation.DonationStore
		recommender Recommender
		notifier    notification.Notifier

		mu       sync.Mutex
		sessions map[string]*session
	}
)

func NewAllocationService(store donation.DonationStore, recommender Recommender, notifier notification.Notifier) AllocationService {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &allocationService{
		store:       store,
		recommender: recommender,
		notifier:    notifier,
		sessions:    make(map[string]*session),
	}
}

func (s *allocationService) RequestCandidates(ctx context.Context, sess domain.Session, donationID string) (*domain.CandidateList, error) {
	d, err := s.authorize(ctx, sess, donationID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.IsAssignable(d.Status) {
		s.forget(donationID)
		return nil, &domain.PreconditionError{Reason: "cannot request ngo candidates for a " + string(d.Status) + " donation"}
	}

	s.mu.Lock()
	st := s.sessionFor(donationID)
	st.generation++
	generation := st.generation
	st.state = domain.AllocationRequesting
	st.candidates = nil
	s.mu.Unlock()

	quantity, _ := d.Quantity.Float64()
	req := domain.RecommendationRequest{
		DonationType:   d.FoodType,
		Quantity:       quantity,
		ExpiryDate:     d.ExpiryDate,
		PickupLocation: d.PickupLocation,
	}

	recommended, err := s.recommender.Recommend(ctx, req)
	if err == nil {
		err = ctx.Err()
	}
	var candidates []domain.NGOCandidate
	if err == nil {
		candidates, err = normalize(donationID, recommended)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current := st.generation == generation

	if err != nil {
		if current {
			st.state = domain.AllocationFailed
		}
		log.Warnw("ngo recommendation failed", "donation_id", donationID, "error", err)
		var unavailable *domain.RecommendationUnavailableError
		if errors.As(err, &unavailable) {
			return nil, unavailable
		}
		return nil, &domain.RecommendationUnavailableError{Err: err}
	}

	// A newer request for the same donation owns the cache; this caller still gets its own answer.
	if current {
		st.state = domain.AllocationReady
		st.candidates = candidates
	}

	out := make([]domain.NGOCandidate, len(candidates))
	copy(out, candidates)
	return &domain.CandidateList{
		DonationID: donationID,
		State:      domain.AllocationReady,
		Candidates: out,
	}, nil
}

// CommitAssignment binds candidate to the donation, replacing any earlier NGO. Committing the NGO
// that is already assigned leaves the record untouched.
func (s *allocationService) CommitAssignment(ctx context.Context, sess domain.Session, donationID string, candidate domain.NGOCandidate) (*domain.Donation, error) {
	if _, err := s.authorize(ctx, sess, donationID); err != nil {
		return nil, err
	}

	candidateID := strings.TrimSpace(candidate.ID)
	name := strings.TrimSpace(candidate.Name)
	if name == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"name": "required"}}
	}

	var previous string
	updated, err := s.store.Update(ctx, donationID, func(d entities.Donation) (entities.Donation, error) {
		previous = d.AssignedNgoID
		return lifecycle.AssignNgo(d, candidateID, name)
	})
	if err != nil {
		return nil, err
	}

	s.forget(donationID)

	if previous != updated.AssignedNgoID {
		log.Infow("ngo assigned", "donation_id", donationID, "ngo_id", updated.AssignedNgoID, "previous_ngo_id", previous)
		s.notifier.NgoAssigned(ctx, updated)
	}

	return donation.ToDomainDonation(updated), nil
}

func (s *allocationService) CommitCandidate(ctx context.Context, sess domain.Session, donationID string, candidateID string) (*domain.Donation, error) {
	d, err := s.authorize(ctx, sess, donationID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	var (
		found     domain.NGOCandidate
		available bool
	)
	if st, ok := s.sessions[donationID]; ok {
		for _, c := range st.candidates {
			if c.ID == candidateID {
				found, available = c, true
				break
			}
		}
	}
	s.mu.Unlock()

	if !available {
		// The cache is dropped on commit, so a repeated commit of the same candidate lands here.
		// It goes through CommitAssignment so a donation cancelled since then is still rejected.
		if candidateID != "" && d.AssignedNgoID == candidateID {
			return s.CommitAssignment(ctx, sess, donationID, domain.NGOCandidate{ID: d.AssignedNgoID, Name: d.AssignedNgoName})
		}
		return nil, &domain.PreconditionError{Reason: fmt.Sprintf("%s: %q", domain.ErrCandidateNotFound, candidateID)}
	}

	return s.CommitAssignment(ctx, sess, donationID, found)
}

// State reports the allocation state of a donation. Sessions are dropped on commit, so a donation
// without one is committed when it carries an NGO and idle otherwise.
func (s *allocationService) State(donationID string) domain.AllocationState {
	s.mu.Lock()
	st, ok := s.sessions[donationID]
	var state domain.AllocationState
	if ok {
		state = st.state
	}
	s.mu.Unlock()
	if ok {
		return state
	}

	if d, err := s.store.Get(context.Background(), donationID); err == nil && d.HasNgo() {
		return domain.AllocationCommitted
	}
	return domain.AllocationIdle
}

func (s *allocationService) forget(donationID string) {
	s.mu.Lock()
	delete(s.sessions, donationID)
	s.mu.Unlock()
}

// sessionFor must be called with s.mu held.
func (s *allocationService) sessionFor(donationID string) *session {
	st, ok := s.sessions[donationID]
	if !ok {
		st = &session{state: domain.AllocationIdle}
		s.sessions[donationID] = st
	}
	return st
}

func (s *allocationService) authorize(ctx context.Context, sess domain.Session, donationID string) (entities.Donation, error) {
	if err := sess.Validate(); err != nil {
		return entities.Donation{}, err
	}
	d, err := s.store.Get(ctx, donationID)
	if err != nil {
		return entities.Donation{}, err
	}
	if !sess.IsAdmin() && d.UserID != sess.UserID {
		return entities.Donation{}, domain.ErrUnauthorizedDonationAccess
	}
	return d, nil
}

// CandidateID derives the synthetic id of the candidate at position i of a response.
func CandidateID(name string, i int) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-") + "-sug-" + strconv.Itoa(i)
}

// normalize keeps the service order, clamps scores into [0,1] and rejects elements without a
// name or scores. Repeated names stay separate candidates, told apart by position.
func normalize(donationID string, recommended []domain.RecommendedNGO) ([]domain.NGOCandidate, error) {
	candidates := make([]domain.NGOCandidate, 0, len(recommended))
	seen := make(map[string]int, len(recommended))

	for i, r := range recommended {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("candidate %d: missing name", i)
		}
		if r.SuitabilityScore == nil || r.UrgencyScore == nil {
			return nil, fmt.Errorf("candidate %d (%s): missing score", i, name)
		}

		key := strings.Join(strings.Fields(strings.ToLower(name)), " ")
		if first, dup := seen[key]; dup {
			log.Warnw("recommendation returned a duplicate ngo name", "donation_id", donationID, "name", name, "first_position", first, "position", i)
		} else {
			seen[key] = i
		}

		candidates = append(candidates, domain.NGOCandidate{
			ID:               CandidateID(name, i),
			Name:             name,
			SuitabilityScore: clamp(*r.SuitabilityScore),
			UrgencyScore:     clamp(*r.UrgencyScore),
			Address:          strings.TrimSpace(r.Address),
			ContactNumber:    strings.TrimSpace(r.ContactNumber),
			Notes:            strings.TrimSpace(r.Notes),
		})
	}

	return candidates, nil
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
