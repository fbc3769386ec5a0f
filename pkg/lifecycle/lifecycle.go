// Package lifecycle holds the donation state machine and the assignment rules that depend on it.
// Every function here is pure: it takes a record and returns the next version of it, leaving
// persistence to the donation store.
package lifecycle

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
)

var transitions = map[domain.DonationStatus][]domain.DonationStatus{
	domain.StatusPending:  {domain.StatusApproved, domain.StatusCancelled},
	domain.StatusApproved: {domain.StatusPickedUp, domain.StatusCancelled},
	domain.StatusPickedUp: {domain.StatusDelivered},
}

// CanTransition reports whether from -> to is an edge of the donation state graph.
func CanTransition(from, to domain.DonationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status transition is possible from s.
func IsTerminal(s domain.DonationStatus) bool {
	return len(transitions[s]) == 0
}

// IsAssignable reports whether NGO assignment fields may still change in status s.
func IsAssignable(s domain.DonationStatus) bool {
	return s == domain.StatusPending || s == domain.StatusApproved
}

func Transition(d entities.Donation, to domain.DonationStatus) (entities.Donation, error) {
	if !to.Valid() || !CanTransition(d.Status, to) {
		return d, &domain.InvalidTransitionError{From: d.Status, To: to}
	}

	if to == domain.StatusPickedUp {
		if !d.HasNgo() {
			return d, &domain.PreconditionError{Reason: "pickup requires an assigned ngo"}
		}
		if !d.HasVolunteer() {
			return d, &domain.PreconditionError{Reason: "pickup requires an assigned volunteer"}
		}
	}

	d.Status = to
	return d, nil
}

// AssignNgo binds an NGO to the donation, replacing any previous one. Re-assigning the same NGO
// returns the record unchanged. Changing the NGO drops the volunteer, who was arranged for the
// previous NGO.
func AssignNgo(d entities.Donation, ngoID, ngoName string) (entities.Donation, error) {
	if ngoID == "" {
		return d, &domain.ValidationError{Fields: map[string]string{"ngo_id": "required"}}
	}
	if !IsAssignable(d.Status) {
		return d, &domain.PreconditionError{Reason: "cannot assign an ngo to a " + string(d.Status) + " donation"}
	}
	if d.AssignedNgoID == ngoID && d.AssignedNgoName == ngoName {
		return d, nil
	}

	if d.AssignedNgoID != ngoID {
		d.AssignedVolunteerID = ""
	}
	d.AssignedNgoID = ngoID
	d.AssignedNgoName = ngoName
	return d, nil
}

// AssignVolunteer requires an assigned NGO and an approved donation.
func AssignVolunteer(d entities.Donation, volunteerID string) (entities.Donation, error) {
	if volunteerID == "" {
		return d, &domain.ValidationError{Fields: map[string]string{"volunteer_id": "required"}}
	}
	if !d.HasNgo() {
		return d, &domain.PreconditionError{Reason: "a volunteer can only be assigned after an ngo"}
	}
	if d.Status != domain.StatusApproved {
		return d, &domain.PreconditionError{Reason: "a volunteer can only be assigned to an approved donation"}
	}

	d.AssignedVolunteerID = volunteerID
	return d, nil
}
