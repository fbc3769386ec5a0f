package handlers

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/internal/api/presenters"
	"FeastForBeasts/internal/middleware"
	"FeastForBeasts/pkg/profile"

	"github.com/gofiber/fiber/v2"
)

type (
	ProfileHandler interface {
		GetProfile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
	}
)

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
	}
}

func (h *profileHandler) GetProfile(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	p, err := h.profileService.GetProfile(c.Context(), session)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, p, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) UpdateProfile(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	req := new(domain.UpdateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	p, err := h.profileService.UpdateProfile(c.Context(), session, *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateProfile, err)
	}

	return presenters.SuccessResponse(c, p, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}
