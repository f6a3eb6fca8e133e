package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/models"
)

// AdminHandler serves the admin dashboard aggregates.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DashboardStats returns the counters and revenue figures shown on the admin
// overview page.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalUsers, totalAgents, totalPolicies, totalApplications, pendingClaims int64

	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.User{}).
		Where("role = ?", models.RoleAgent).
		Count(&totalAgents).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Policy{}).Count(&totalPolicies).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Application{}).Count(&totalApplications).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Application{}).
		Where("claim_status = ?", models.ClaimPending).
		Count(&pendingClaims).Error; err != nil {
		return err
	}

	var byStatus []statusCount
	if err := h.db.Model(&models.Application{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return err
	}

	var totalRevenue, todayRevenue float64
	if err := h.db.Model(&models.Payment{}).
		Select("coalesce(sum(amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	if err := h.db.Model(&models.Payment{}).
		Select("coalesce(sum(amount), 0)").
		Where("paid_at >= ?", startOfDay).
		Scan(&todayRevenue).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"totalUsers":           totalUsers,
			"totalAgents":          totalAgents,
			"totalPolicies":        totalPolicies,
			"totalApplications":    totalApplications,
			"applicationsByStatus": byStatus,
			"pendingClaims":        pendingClaims,
			"totalRevenue":         totalRevenue,
			"todayRevenue":         todayRevenue,
		},
	})
}
