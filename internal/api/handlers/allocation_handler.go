package handlers

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/internal/api/presenters"
	"FeastForBeasts/internal/middleware"
	"FeastForBeasts/internal/utils"
	"FeastForBeasts/pkg/allocation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AllocationHandler interface {
		RequestCandidates(c *fiber.Ctx) error
		CommitAssignment(c *fiber.Ctx) error
	}

	allocationHandler struct {
		allocationService allocation.AllocationService
		validator         *validator.Validate
	}
)

func NewAllocationHandler(allocationService allocation.AllocationService, validator *validator.Validate) AllocationHandler {
	return &allocationHandler{
		allocationService: allocationService,
		validator:         validator,
	}
}

func (h *allocationHandler) RequestCandidates(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	candidates, err := h.allocationService.RequestCandidates(c.Context(), session, c.Params("id"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedRequestCandidates, err)
	}

	return presenters.SuccessResponse(c, candidates, fiber.StatusOK, domain.MessageSuccessRequestCandidates)
}

func (h *allocationHandler) CommitAssignment(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	req := new(domain.CommitAssignmentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCommitAssignment, err)
	}

	donation, err := h.allocationService.CommitCandidate(c.Context(), session, c.Params("id"), req.CandidateID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCommitAssignment, err)
	}

	return presenters.SuccessResponse(c, donation, fiber.StatusOK, domain.MessageSuccessCommitAssignment)
}
