package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessCreateDonation  = "donation created successfully"
	MessageSuccessGetDonations    = "donations retrieved successfully"
	MessageSuccessUpdateDonation  = "donation updated successfully"
	MessageSuccessAssignVolunteer = "volunteer assigned successfully"
	MessageSuccessGetStatistics   = "donation statistics retrieved successfully"
	MessageSuccessUploadPhoto     = "donation photo uploaded successfully"

	MessageFailedCreateDonation  = "failed to create donation"
	MessageFailedGetDonations    = "failed to retrieve donations"
	MessageFailedUpdateDonation  = "failed to update donation"
	MessageFailedAssignVolunteer = "failed to assign volunteer"
	MessageFailedGetStatistics   = "failed to retrieve donation statistics"
	MessageFailedUploadPhoto     = "failed to upload donation photo"

	ErrUnauthorizedDonationAccess = errors.New("unauthorized access to donation")
	ErrInvalidDonationStatus      = errors.New("invalid donation status")
	ErrDonationPhotoNotConfigured = errors.New("donation photo storage not configured")
	ErrDonationPhotoMissing       = errors.New("donation photo missing")
)

type DonationStatus string

const (
	StatusPending   DonationStatus = "pending"
	StatusApproved  DonationStatus = "approved"
	StatusPickedUp  DonationStatus = "picked_up"
	StatusDelivered DonationStatus = "delivered"
	StatusCancelled DonationStatus = "cancelled"
)

var DonationStatuses = []DonationStatus{
	StatusPending,
	StatusApproved,
	StatusPickedUp,
	StatusDelivered,
	StatusCancelled,
}

func (s DonationStatus) Valid() bool {
	for _, v := range DonationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

const (
	DonationTypeCookedFood       = "cooked_food"
	DonationTypeCannedGoods      = "canned_goods"
	DonationTypeBakeryProducts   = "bakery_products"
	DonationTypeFruitsVegetables = "fruits_vegetables"
	DonationTypeDairyProducts    = "dairy_products"
	DonationTypeDryGrains        = "dry_grains"
	DonationTypeOther            = "other"

	UnitKilogram = "kg"
	UnitItems    = "items"

	// ExpiryDateLayout is the calendar date format used on the wire and in storage.
	ExpiryDateLayout = "2006-01-02"
)

type (
	DonationRequest struct {
		DonationType   string          `json:"donation_type" validate:"required,oneof=cooked_food canned_goods bakery_products fruits_vegetables dairy_products dry_grains other"`
		Quantity       decimal.Decimal `json:"quantity" validate:"gt=0,lte=1000000"`
		QuantityUnit   string          `json:"quantity_unit" validate:"required,oneof=kg items"`
		ExpiryDate     string          `json:"expiry_date" validate:"required,datetime=2006-01-02"`
		PickupLocation string          `json:"pickup_location" validate:"required,max=500"`
		Notes          string          `json:"notes" validate:"omitempty,max=2000"`
	}

	Donation struct {
		ID                  string          `json:"id"`
		UserID              string          `json:"user_id"`
		DonationType        string          `json:"donation_type"`
		Quantity            decimal.Decimal `json:"quantity"`
		QuantityUnit        string          `json:"quantity_unit"`
		ExpiryDate          string          `json:"expiry_date"`
		PickupLocation      string          `json:"pickup_location"`
		Notes               string          `json:"notes,omitempty"`
		Status              DonationStatus  `json:"status"`
		SubmittedAt         time.Time       `json:"submitted_at"`
		AssignedNgoID       string          `json:"assigned_ngo_id,omitempty"`
		AssignedNgoName     string          `json:"assigned_ngo_name,omitempty"`
		AssignedVolunteerID string          `json:"assigned_volunteer_id,omitempty"`
	}

	UpdateDonationStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=pending approved picked_up delivered cancelled"`
	}

	AssignVolunteerRequest struct {
		VolunteerID string `json:"volunteer_id" validate:"required,max=128"`
	}

	DonationStatistics struct {
		TotalDonations     int             `json:"total_donations"`
		PendingDonations   int             `json:"pending_donations"`
		ActiveDonations    int             `json:"active_donations"`
		DeliveredDonations int             `json:"delivered_donations"`
		CancelledDonations int             `json:"cancelled_donations"`
		DeliveredKilograms decimal.Decimal `json:"delivered_kilograms"`
		DeliveredItems     decimal.Decimal `json:"delivered_items"`
		PointsBalance      int             `json:"points_balance"`
	}

	DonationPhoto struct {
		DonationID string `json:"donation_id"`
		URL        string `json:"url"`
	}
)
