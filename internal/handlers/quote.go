package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/models"
	"github.com/example/aegislife/internal/services"
)

// QuoteHandler estimates premiums from the rate card.
type QuoteHandler struct {
	db *gorm.DB
}

// NewQuoteHandler constructs a QuoteHandler.
func NewQuoteHandler(db *gorm.DB) *QuoteHandler {
	return &QuoteHandler{db: db}
}

type quoteRequest struct {
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	CoverageAmount float64 `json:"coverageAmount"`
	IsSmoker       string  `json:"isSmoker"`
	PromoCode      string  `json:"promoCode"`
	PolicyID       string  `json:"policyId"`
}

// Estimate returns an estimated monthly premium. A policy id pulls that
// policy's base rate into the calculation.
func (h *QuoteHandler) Estimate(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	input := services.QuoteInput{
		Age:            req.Age,
		Gender:         req.Gender,
		CoverageAmount: req.CoverageAmount,
		Smoker:         strings.EqualFold(req.IsSmoker, "yes"),
		PromoCode:      req.PromoCode,
	}

	if req.PolicyID != "" {
		id, err := uuid.Parse(req.PolicyID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid policy id")
		}
		var policy models.Policy
		if err := h.db.First(&policy, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "policy not found")
			}
			return err
		}
		input.BaseRate = policy.BaseRate
	}

	premium, err := services.EstimatePremium(input)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"estimatedPremium": premium,
		"discount":         services.PromoDiscount(input.PromoCode),
	})
}
