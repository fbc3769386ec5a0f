package utils

import (
	"FeastForBeasts/domain"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_DonationRequest(t *testing.T) {
	v := NewValidator()

	valid := domain.DonationRequest{
		DonationType:   domain.DonationTypeCannedGoods,
		Quantity:       decimal.NewFromInt(10),
		QuantityUnit:   domain.UnitKilogram,
		ExpiryDate:     "2025-01-01",
		PickupLocation: "X",
	}
	require.NoError(t, ValidateStruct(v, valid))

	invalid := domain.DonationRequest{
		DonationType: "furniture",
		Quantity:     decimal.NewFromInt(-1),
		QuantityUnit: "tons",
		ExpiryDate:   "01/01/2025",
	}
	err := ValidateStruct(v, invalid)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, map[string]string{
		"donation_type":   "oneof=cooked_food canned_goods bakery_products fruits_vegetables dairy_products dry_grains other",
		"quantity":        "gt=0",
		"quantity_unit":   "oneof=kg items",
		"expiry_date":     "datetime=2006-01-02",
		"pickup_location": "required",
	}, validationErr.Fields)
}

func TestValidateStruct_ZeroQuantity(t *testing.T) {
	err := ValidateStruct(NewValidator(), domain.DonationRequest{
		DonationType:   domain.DonationTypeOther,
		Quantity:       decimal.Zero,
		QuantityUnit:   domain.UnitItems,
		ExpiryDate:     "2025-01-01",
		PickupLocation: "X",
	})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"quantity": "gt=0"}, validationErr.Fields)
}

func TestGetConfig_EnvOverridesAndDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PATH", "")
	assert.Equal(t, "postgres", GetConfig("DB_DRIVER"))
	assert.Equal(t, "feastforbeasts.db", GetConfig("DB_PATH"))
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
}
