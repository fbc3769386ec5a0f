package domain

import (
	"errors"
)

const (
	RoleDonor     = "donor"
	RoleAdmin     = "admin"
	RoleVolunteer = "volunteer"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrMissingSession = errors.New("missing session")
)

// Session is the caller identity threaded explicitly through every core call.
type Session struct {
	UserID string
	Role   string
	Token  string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func (s Session) Validate() error {
	if s.UserID == "" {
		return ErrMissingSession
	}
	return nil
}
