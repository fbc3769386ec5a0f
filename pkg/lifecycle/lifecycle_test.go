package lifecycle

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDonation(status domain.DonationStatus) entities.Donation {
	return entities.Donation{
		ID:             "don-1",
		UserID:         "user-1",
		FoodType:       domain.DonationTypeCannedGoods,
		Quantity:       decimal.NewFromInt(10),
		QuantityUnit:   domain.UnitKilogram,
		ExpiryDate:     "2025-01-01",
		PickupLocation: "X",
		Status:         status,
		SubmittedAt:    time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestTransition_Edges(t *testing.T) {
	tests := []struct {
		from    domain.DonationStatus
		to      domain.DonationStatus
		allowed bool
	}{
		{domain.StatusPending, domain.StatusApproved, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusPickedUp, false},
		{domain.StatusPending, domain.StatusDelivered, false},
		{domain.StatusPending, domain.StatusPending, false},
		{domain.StatusApproved, domain.StatusCancelled, true},
		{domain.StatusApproved, domain.StatusDelivered, false},
		{domain.StatusApproved, domain.StatusPending, false},
		{domain.StatusPickedUp, domain.StatusDelivered, true},
		{domain.StatusPickedUp, domain.StatusCancelled, false},
		{domain.StatusDelivered, domain.StatusDelivered, false},
		{domain.StatusDelivered, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusPending, false},
		{domain.StatusCancelled, domain.StatusApproved, false},
		{domain.StatusPending, domain.DonationStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			d := newDonation(tt.from)
			next, err := Transition(d, tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next.Status)
				return
			}

			var transitionErr *domain.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, tt.from, transitionErr.From)
			assert.Equal(t, tt.to, transitionErr.To)
			assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
			assert.Equal(t, tt.from, next.Status)
		})
	}
}

func TestTransition_PickupRequiresAssignments(t *testing.T) {
	tests := []struct {
		name      string
		ngo       string
		volunteer string
	}{
		{name: "nothing_assigned"},
		{name: "ngo_only", ngo: "food-bank-abc-sug-0"},
		{name: "volunteer_only", volunteer: "vol-jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDonation(domain.StatusApproved)
			d.AssignedNgoID = tt.ngo
			d.AssignedVolunteerID = tt.volunteer

			next, err := Transition(d, domain.StatusPickedUp)
			require.ErrorIs(t, err, domain.ErrPrecondition)
			assert.Equal(t, domain.StatusApproved, next.Status)
		})
	}

	d := newDonation(domain.StatusApproved)
	d.AssignedNgoID = "food-bank-abc-sug-0"
	d.AssignedVolunteerID = "vol-jane"
	next, err := Transition(d, domain.StatusPickedUp)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPickedUp, next.Status)
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	d := newDonation(domain.StatusPending)
	_, err := Transition(d, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, d.Status)
}

func TestTerminalStates(t *testing.T) {
	assert.False(t, IsTerminal(domain.StatusPending))
	assert.False(t, IsTerminal(domain.StatusApproved))
	assert.False(t, IsTerminal(domain.StatusPickedUp))
	assert.True(t, IsTerminal(domain.StatusDelivered))
	assert.True(t, IsTerminal(domain.StatusCancelled))
}

func TestAssignNgo(t *testing.T) {
	d := newDonation(domain.StatusPending)

	assigned, err := AssignNgo(d, "food-bank-abc-sug-0", "Food Bank ABC")
	require.NoError(t, err)
	assert.Equal(t, "food-bank-abc-sug-0", assigned.AssignedNgoID)
	assert.Equal(t, "Food Bank ABC", assigned.AssignedNgoName)

	again, err := AssignNgo(assigned, "food-bank-abc-sug-0", "Food Bank ABC")
	require.NoError(t, err)
	assert.True(t, again.Equal(assigned))

	assigned.Status = domain.StatusApproved
	assigned.AssignedVolunteerID = "vol-jane"
	replaced, err := AssignNgo(assigned, "kitchen-xyz-sug-1", "Kitchen XYZ")
	require.NoError(t, err)
	assert.Equal(t, "kitchen-xyz-sug-1", replaced.AssignedNgoID)
	assert.Empty(t, replaced.AssignedVolunteerID)

	for _, status := range []domain.DonationStatus{domain.StatusCancelled, domain.StatusPickedUp, domain.StatusDelivered} {
		_, err := AssignNgo(newDonation(status), "food-bank-abc-sug-0", "Food Bank ABC")
		assert.ErrorIs(t, err, domain.ErrPrecondition, string(status))
	}

	_, err = AssignNgo(d, "", "Nameless")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssignVolunteer(t *testing.T) {
	d := newDonation(domain.StatusApproved)
	_, err := AssignVolunteer(d, "vol-jane")
	require.ErrorIs(t, err, domain.ErrPrecondition)

	d.AssignedNgoID = "food-bank-abc-sug-0"
	next, err := AssignVolunteer(d, "vol-jane")
	require.NoError(t, err)
	assert.Equal(t, "vol-jane", next.AssignedVolunteerID)

	pending := newDonation(domain.StatusPending)
	pending.AssignedNgoID = "food-bank-abc-sug-0"
	_, err = AssignVolunteer(pending, "vol-jane")
	assert.ErrorIs(t, err, domain.ErrPrecondition)

	_, err = AssignVolunteer(d, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
