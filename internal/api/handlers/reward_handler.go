package handlers

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/internal/api/presenters"
	"FeastForBeasts/internal/middleware"
	"FeastForBeasts/internal/utils"
	"FeastForBeasts/pkg/reward"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RewardHandler interface {
		GetRewards(c *fiber.Ctx) error
		GetPointsSummary(c *fiber.Ctx) error
		GetLedgerHistory(c *fiber.Ctx) error
		RedeemReward(c *fiber.Ctx) error
	}

	rewardHandler struct {
		rewardService reward.RewardService
		validator     *validator.Validate
	}
)

func NewRewardHandler(rewardService reward.RewardService, validator *validator.Validate) RewardHandler {
	return &rewardHandler{
		rewardService: rewardService,
		validator:     validator,
	}
}

func (h *rewardHandler) GetRewards(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.rewardService.GetRewards(c.Context()), fiber.StatusOK, domain.MessageSuccessGetRewards)
}

func (h *rewardHandler) GetPointsSummary(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	summary, err := h.rewardService.GetPointsSummary(c.Context(), session)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetBalance, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessGetBalance)
}

func (h *rewardHandler) GetLedgerHistory(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	page, limit := parsePagination(c)

	entries, count, err := h.rewardService.GetLedgerHistory(c.Context(), session, page, limit)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetLedgerHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"entries":    entries,
		"pagination": paginationMeta(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetLedgerHistory)
}

func (h *rewardHandler) RedeemReward(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	req := new(domain.RedeemRewardRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedRedeemReward, err)
	}

	entry, err := h.rewardService.RedeemReward(c.Context(), session, req.RewardID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedRedeemReward, err)
	}

	return presenters.SuccessResponse(c, entry, fiber.StatusOK, domain.MessageSuccessRedeemReward)
}
