package profile

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/internal/testutil"
	"FeastForBeasts/internal/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) ProfileService {
	t.Helper()
	return NewProfileService(NewProfileRepository(testutil.NewTestDB(t)), utils.NewValidator())
}

func TestGetProfile_CreatesDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	session := domain.Session{UserID: "user1", Role: domain.RoleDonor}

	profile, err := svc.GetProfile(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{
		UserID:    "user1",
		Name:      domain.DefaultProfileName,
		AvatarURL: domain.DefaultProfileAvatar,
		Role:      domain.RoleDonor,
	}, *profile)

	_, err = svc.UpdateProfile(ctx, session, domain.UpdateProfileRequest{Name: strPtr("Alex")})
	require.NoError(t, err)

	again, err := svc.GetProfile(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "Alex", again.Name)

	_, err = svc.GetProfile(ctx, domain.Session{})
	assert.ErrorIs(t, err, domain.ErrMissingSession)
}

func TestUpdateProfile_Partial(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	session := domain.Session{UserID: "user1"}

	updated, err := svc.UpdateProfile(ctx, session, domain.UpdateProfileRequest{
		Email: strPtr("alex@example.com"),
		Phone: strPtr("+62 812 0000"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProfileName, updated.Name)
	assert.Equal(t, "alex@example.com", updated.Email)
	assert.Equal(t, "+62 812 0000", updated.Phone)
	assert.Equal(t, domain.RoleDonor, updated.Role)

	updated, err = svc.UpdateProfile(ctx, session, domain.UpdateProfileRequest{
		Name: strPtr("<b>Alex</b>"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex", updated.Name)
	assert.Equal(t, "alex@example.com", updated.Email)

	updated, err = svc.UpdateProfile(ctx, session, domain.UpdateProfileRequest{
		Name: strPtr(`Alex "AJ" O'Neil & Co`),
	})
	require.NoError(t, err)
	assert.Equal(t, `Alex "AJ" O'Neil & Co`, updated.Name)

	contact, err := svc.GetContact(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", contact.Email)
}

func TestUpdateProfile_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	session := domain.Session{UserID: "user1"}

	_, err := svc.UpdateProfile(ctx, session, domain.UpdateProfileRequest{Email: strPtr("not-an-email")})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")

	_, err = svc.UpdateProfile(ctx, session, domain.UpdateProfileRequest{Name: strPtr("<script></script>")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetContact_UnknownUser(t *testing.T) {
	contact, err := newTestService(t).GetContact(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", contact.UserID)
	assert.Empty(t, contact.Email)
}
