package entities

import (
	"FeastForBeasts/domain"
	"time"

	"github.com/shopspring/decimal"
)

// Donation is the persisted donation record. The column set mirrors the flat record layout read
// by history displays; optional assignment fields are empty strings until set.
type Donation struct {
	ID                  string                `gorm:"primaryKey;size:64" json:"id"`
	UserID              string                `gorm:"index;size:64;not null" json:"userId"`
	FoodType            string                `gorm:"size:64;not null" json:"foodType"`
	Quantity            decimal.Decimal       `gorm:"type:numeric(12,3);not null" json:"quantity"`
	QuantityUnit        string                `gorm:"size:16;not null" json:"quantityUnit"`
	ExpiryDate          string                `gorm:"size:10;not null" json:"expiryDate"`
	PickupLocation      string                `gorm:"not null" json:"pickupLocation"`
	Notes               string                `json:"notes,omitempty"`
	Status              domain.DonationStatus `gorm:"size:16;index;not null" json:"status"`
	SubmittedAt         time.Time             `gorm:"index;not null" json:"submittedAt"`
	AssignedNgoID       string                `gorm:"size:128" json:"assignedNgoId,omitempty"`
	AssignedNgoName     string                `json:"assignedNgoName,omitempty"`
	AssignedVolunteerID string                `gorm:"size:128" json:"assignedVolunteerId,omitempty"`
}

func (d Donation) Equal(o Donation) bool {
	return d.ID == o.ID &&
		d.UserID == o.UserID &&
		d.FoodType == o.FoodType &&
		d.Quantity.Equal(o.Quantity) &&
		d.QuantityUnit == o.QuantityUnit &&
		d.ExpiryDate == o.ExpiryDate &&
		d.PickupLocation == o.PickupLocation &&
		d.Notes == o.Notes &&
		d.Status == o.Status &&
		d.SubmittedAt.Equal(o.SubmittedAt) &&
		d.AssignedNgoID == o.AssignedNgoID &&
		d.AssignedNgoName == o.AssignedNgoName &&
		d.AssignedVolunteerID == o.AssignedVolunteerID
}

func (d Donation) HasNgo() bool {
	return d.AssignedNgoID != ""
}

func (d Donation) HasVolunteer() bool {
	return d.AssignedVolunteerID != ""
}
