package domain

var (
	MessageSuccessGetProfile    = "profile retrieved successfully"
	MessageSuccessUpdateProfile = "profile updated successfully"

	MessageFailedGetProfile    = "failed to retrieve profile"
	MessageFailedUpdateProfile = "failed to update profile"
)

type (
	Profile struct {
		UserID    string `json:"user_id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Phone     string `json:"phone,omitempty"`
		AvatarURL string `json:"avatar_url"`
		Role      string `json:"role"`
	}

	// UpdateProfileRequest carries a partial update; nil fields are left untouched.
	UpdateProfileRequest struct {
		Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
		Email     *string `json:"email" validate:"omitempty,email"`
		Phone     *string `json:"phone" validate:"omitempty,max=32"`
		AvatarURL *string `json:"avatar_url" validate:"omitempty,max=500"`
	}
)

const (
	DefaultProfileName   = "Donor User"
	DefaultProfileAvatar = "/images/user-avatar.jpg"
)
