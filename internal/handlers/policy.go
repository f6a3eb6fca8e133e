package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/models"
	"github.com/example/aegislife/internal/utils"
)

// PolicyHandler manages the policy catalog.
type PolicyHandler struct {
	db *gorm.DB
}

// NewPolicyHandler constructs a PolicyHandler.
func NewPolicyHandler(db *gorm.DB) *PolicyHandler {
	return &PolicyHandler{db: db}
}

// ListPolicies returns the catalog with pagination, category filter, and
// title search.
func (h *PolicyHandler) ListPolicies(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Policy{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var policies []models.Policy
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&policies).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"policies":    policies,
		"totalPages":  int(math.Ceil(float64(total) / float64(pg.Limit))),
		"totalItems":  total,
		"currentPage": pg.Page,
	})
}

// PopularPolicies returns the most purchased policies for the landing page.
func (h *PolicyHandler) PopularPolicies(c *fiber.Ctx) error {
	var policies []models.Policy
	if err := h.db.Order("purchase_count desc").
		Limit(6).
		Find(&policies).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": policies})
}

// GetPolicy returns a single catalog entry.
func (h *PolicyHandler) GetPolicy(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var policy models.Policy
	if err := h.db.First(&policy, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "policy not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": policy})
}

type policyRequest struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Details  string  `json:"details"`
	ImageURL string  `json:"image"`
	Coverage string  `json:"coverage"`
	Term     string  `json:"term"`
	BaseRate float64 `json:"baseRate"`
	MinAge   int     `json:"minAge"`
	MaxAge   int     `json:"maxAge"`
}

// CreatePolicy adds a catalog entry.
func (h *PolicyHandler) CreatePolicy(c *fiber.Ctx) error {
	var req policyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title == "" || req.Category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title and category are required")
	}

	policy := models.Policy{
		Title:    req.Title,
		Category: req.Category,
		Details:  req.Details,
		ImageURL: req.ImageURL,
		Coverage: req.Coverage,
		Term:     req.Term,
		BaseRate: req.BaseRate,
		MinAge:   req.MinAge,
		MaxAge:   req.MaxAge,
	}

	if err := h.db.Create(&policy).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": policy})
}

// UpdatePolicy edits a catalog entry.
func (h *PolicyHandler) UpdatePolicy(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var policy models.Policy
	if err := h.db.First(&policy, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "policy not found")
		}
		return err
	}

	var req policyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title != "" {
		policy.Title = req.Title
	}
	if req.Category != "" {
		policy.Category = req.Category
	}
	if req.Details != "" {
		policy.Details = req.Details
	}
	if req.ImageURL != "" {
		policy.ImageURL = req.ImageURL
	}
	if req.Coverage != "" {
		policy.Coverage = req.Coverage
	}
	if req.Term != "" {
		policy.Term = req.Term
	}
	if req.BaseRate > 0 {
		policy.BaseRate = req.BaseRate
	}
	if req.MinAge > 0 {
		policy.MinAge = req.MinAge
	}
	if req.MaxAge > 0 {
		policy.MaxAge = req.MaxAge
	}

	if err := h.db.Save(&policy).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": policy})
}

// DeletePolicy removes a catalog entry.
func (h *PolicyHandler) DeletePolicy(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.Policy{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "policy not found")
	}

	return c.JSON(fiber.Map{"success": true})
}
