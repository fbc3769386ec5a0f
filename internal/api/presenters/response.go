package presenters

import (
	"FeastForBeasts/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	Response struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
		Error   any    `json:"error,omitempty"`
	}

	ErrorBody struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields,omitempty"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := ErrorBody{}
	if err != nil {
		body.Message = err.Error()
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			body.Fields = validationErr.Fields
		}
	}
	return c.Status(statusCode).JSON(Response{
		Status:  false,
		Message: message,
		Error:   body,
	})
}

// StatusFor maps the error taxonomy of the services to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidReward),
		errors.Is(err, domain.ErrInvalidPoints):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrMissingSession),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotAllowed),
		errors.Is(err, domain.ErrUnauthorizedDonationAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrRewardAlreadyRedeemed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrPrecondition),
		errors.Is(err, domain.ErrInsufficientPoints):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRecommendationUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrDonationPhotoNotConfigured):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ServiceError writes err with the status StatusFor picks for it.
func ServiceError(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFor(err), message, err)
}
