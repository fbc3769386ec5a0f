package domain

import (
	"errors"
)

var (
	MessageSuccessRequestCandidates = "ngo candidates retrieved successfully"
	MessageSuccessCommitAssignment  = "ngo assigned successfully"

	MessageFailedRequestCandidates = "failed to retrieve ngo candidates"
	MessageFailedCommitAssignment  = "failed to assign ngo"

	ErrCandidateNotFound = errors.New("candidate not found in the current suggestions")
)

// AllocationState is the position of one donation's matching session.
type AllocationState string

const (
	AllocationIdle       AllocationState = "idle"
	AllocationRequesting AllocationState = "requesting"
	AllocationReady      AllocationState = "ready"
	AllocationFailed     AllocationState = "failed"
	AllocationCommitted  AllocationState = "committed"
)

type (
	// RecommendationRequest is the body sent to the Recommendation Service.
	RecommendationRequest struct {
		DonationType   string  `json:"donationType"`
		Quantity       float64 `json:"quantity"`
		ExpiryDate     string  `json:"expiryDate"`
		PickupLocation string  `json:"pickupLocation"`
	}

	// RecommendedNGO is one element of the Recommendation Service response, as received.
	RecommendedNGO struct {
		Name             string   `json:"name"`
		SuitabilityScore *float64 `json:"suitabilityScore"`
		UrgencyScore     *float64 `json:"urgencyScore"`
		Address          string   `json:"address"`
		ContactNumber    string   `json:"contactNumber"`
		Notes            string   `json:"notes,omitempty"`
	}

	NGOCandidate struct {
		ID               string  `json:"id"`
		Name             string  `json:"name"`
		SuitabilityScore float64 `json:"suitability_score"`
		UrgencyScore     float64 `json:"urgency_score"`
		Address          string  `json:"address"`
		ContactNumber    string  `json:"contact_number"`
		Notes            string  `json:"notes,omitempty"`
	}

	CandidateList struct {
		DonationID string          `json:"donation_id"`
		State      AllocationState `json:"state"`
		Candidates []NGOCandidate  `json:"candidates"`
	}

	CommitAssignmentRequest struct {
		CandidateID string `json:"candidate_id" validate:"required"`
	}
)
