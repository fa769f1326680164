package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ashleighd/voice-coaching-backend/internal/models"
	"github.com/ashleighd/voice-coaching-backend/internal/service"
)

type TierHandler struct {
	tierService *service.TierService
}

func NewTierHandler(tierService *service.TierService) *TierHandler {
	return &TierHandler{
		tierService: tierService,
	}
}

func (h *TierHandler) GetAllTiers(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.tierService.GetAllTiers(), "Tiers retrieved successfully"))
}

func (h *TierHandler) GetTierByKey(c *fiber.Ctx) error {
	tier, err := h.tierService.GetTierByKey(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Tier not found"))
	}

	return c.JSON(models.SuccessResponse(tier, "Tier retrieved successfully"))
}

func (h *TierHandler) GetPaymentConfig(c *fiber.Ctx) error {
	return c.JSON(h.tierService.GetPaymentConfig())
}
