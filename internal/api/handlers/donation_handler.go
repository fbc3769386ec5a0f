package handlers

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/internal/api/presenters"
	"FeastForBeasts/internal/middleware"
	"FeastForBeasts/pkg/donation"

	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateDonation(c *fiber.Ctx) error
		GetUserDonations(c *fiber.Ctx) error
		GetDonationByID(c *fiber.Ctx) error
		UpdateDonationStatus(c *fiber.Ctx) error
		AssignVolunteer(c *fiber.Ctx) error
		GetDonationStatistics(c *fiber.Ctx) error
		UploadDonationPhoto(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
	}
)

func NewDonationHandler(donationService donation.DonationService) DonationHandler {
	return &donationHandler{
		donationService: donationService,
	}
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	req := new(domain.DonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	donation, err := h.donationService.CreateDonation(c.Context(), session, *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, donation, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetUserDonations(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	page, limit := parsePagination(c)

	donations, count, err := h.donationService.GetUserDonations(c.Context(), session, page, limit)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations":  donations,
		"pagination": paginationMeta(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationByID(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	donation, err := h.donationService.GetDonationByID(c.Context(), session, c.Params("id"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, donation, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) UpdateDonationStatus(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	req := new(domain.UpdateDonationStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	donation, err := h.donationService.UpdateDonationStatus(c.Context(), session, c.Params("id"), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateDonation, err)
	}

	return presenters.SuccessResponse(c, donation, fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}

func (h *donationHandler) AssignVolunteer(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	req := new(domain.AssignVolunteerRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	donation, err := h.donationService.AssignVolunteer(c.Context(), session, c.Params("id"), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedAssignVolunteer, err)
	}

	return presenters.SuccessResponse(c, donation, fiber.StatusOK, domain.MessageSuccessAssignVolunteer)
}

func (h *donationHandler) GetDonationStatistics(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	stats, err := h.donationService.GetDonationStatistics(c.Context(), session)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetStatistics, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetStatistics)
}

func (h *donationHandler) UploadDonationPhoto(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhoto, domain.ErrDonationPhotoMissing)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhoto, err)
	}
	defer file.Close()

	photo, err := h.donationService.UploadDonationPhoto(
		c.Context(),
		session,
		c.Params("id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUploadPhoto, err)
	}

	return presenters.SuccessResponse(c, photo, fiber.StatusCreated, domain.MessageSuccessUploadPhoto)
}
