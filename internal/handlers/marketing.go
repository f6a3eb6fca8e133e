package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/middleware"
	"github.com/example/aegislife/internal/models"
)

// MarketingHandler covers reviews and the newsletter list.
type MarketingHandler struct {
	db *gorm.DB
}

// NewMarketingHandler constructs a MarketingHandler.
func NewMarketingHandler(db *gorm.DB) *MarketingHandler {
	return &MarketingHandler{db: db}
}

// ListReviews returns customer reviews for the landing page carousel.
func (h *MarketingHandler) ListReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	if err := h.db.Order("created_at desc").Find(&reviews).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": reviews})
}

type createReviewRequest struct {
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	PolicyTitle string `json:"policyTitle"`
}

// CreateReview stores a review authored by the signed-in customer.
func (h *MarketingHandler) CreateReview(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
	}
	if req.Comment == "" {
		return fiber.NewError(fiber.StatusBadRequest, "comment is required")
	}

	var author models.User
	if err := h.db.First(&author, "email = ?", email).Error; err != nil {
		return err
	}

	review := models.Review{
		UserName:    author.Name,
		UserEmail:   author.Email,
		UserPhoto:   author.PhotoURL,
		Rating:      req.Rating,
		Comment:     req.Comment,
		PolicyTitle: req.PolicyTitle,
	}

	if err := h.db.Create(&review).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": review})
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe adds an address to the newsletter list. Resubscribing is a no-op.
func (h *MarketingHandler) Subscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	var existing models.NewsletterSubscriber
	err := h.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{"success": true, "subscribed": true})
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := h.db.Create(&models.NewsletterSubscriber{Email: req.Email}).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "subscribed": true})
}
