package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/middleware"
	"github.com/example/aegislife/internal/models"
	"github.com/example/aegislife/internal/services"
	"github.com/example/aegislife/internal/utils"
)

// UserHandler manages user records, role flags, and profiles.
type UserHandler struct {
	db    *gorm.DB
	roles *services.RoleCache
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(db *gorm.DB, roles *services.RoleCache) *UserHandler {
	return &UserHandler{db: db, roles: roles}
}

type upsertUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
}

// UpsertUser stores a user on first sign-in. An existing account is returned
// untouched so repeated sign-ins never reset the role.
func (h *UserHandler) UpsertUser(c *fiber.Ctx) error {
	var req upsertUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	var existing models.User
	err := h.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{"success": true, "data": existing, "inserted": false})
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Role:     models.RoleCustomer,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user, "inserted": true})
}

// ListUsers returns all registered users with pagination and search.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.User{})

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole promotes or demotes a user between customer and agent. Admin
// accounts are pinned.
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Role != models.RoleCustomer && req.Role != models.RoleAgent {
		return fiber.NewError(fiber.StatusBadRequest, "role must be customer or agent")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	if user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "admin role cannot be changed")
	}

	if err := h.db.Model(&user).Update("role", req.Role).Error; err != nil {
		return err
	}

	// The memoized role is stale the moment the row changes.
	_ = h.roles.Invalidate(c.Context(), user.Email)

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": user.ID, "role": req.Role}})
}

// IsAdmin reports whether the caller holds the admin role. Identities may
// only ask about themselves.
func (h *UserHandler) IsAdmin(c *fiber.Ctx) error {
	role, err := h.roleForParam(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"admin": role == models.RoleAdmin})
}

// IsAgent reports whether the caller holds the agent role.
func (h *UserHandler) IsAgent(c *fiber.Ctx) error {
	role, err := h.roleForParam(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"agent": role == models.RoleAgent})
}

// GetRole returns the caller's resolved role.
func (h *UserHandler) GetRole(c *fiber.Ctx) error {
	role, err := h.roleForParam(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"role": role})
}

func (h *UserHandler) roleForParam(c *fiber.Ctx) (string, error) {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if c.Params("email") != email {
		return "", fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	role, err := middleware.ResolveRole(c, h.db, h.roles, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Unknown identities get customer-equivalent access rather than
			// a blocked session.
			return models.RoleCustomer, nil
		}
		return "", err
	}
	return role, nil
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// UpdateProfile lets a signed-in user change their display name and photo.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if c.Params("email") != email {
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.PhotoURL != "" {
		updates["photo_url"] = req.PhotoURL
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	result := h.db.Model(&models.User{}).Where("email = ?", email).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

// ListAgents returns all agents for the admin assignment picker.
func (h *UserHandler) ListAgents(c *fiber.Ctx) error {
	var agents []models.User
	if err := h.db.Where("role = ?", models.RoleAgent).
		Order("name asc").
		Find(&agents).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": agents})
}

// PublicAgents returns a short list of featured agents for the landing page.
func (h *UserHandler) PublicAgents(c *fiber.Ctx) error {
	var agents []models.User
	if err := h.db.Select("id, name, email, photo_url, role").
		Where("role = ?", models.RoleAgent).
		Order("created_at asc").
		Limit(6).
		Find(&agents).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": agents})
}
