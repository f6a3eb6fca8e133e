package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/middleware"
	"github.com/example/aegislife/internal/models"
)

// BlogHandler manages blog posts for admins, agents, and public readers.
type BlogHandler struct {
	db *gorm.DB
}

// NewBlogHandler constructs a BlogHandler.
func NewBlogHandler(db *gorm.DB) *BlogHandler {
	return &BlogHandler{db: db}
}

// ListBlogs returns all posts, newest first.
func (h *BlogHandler) ListBlogs(c *fiber.Ctx) error {
	var blogs []models.Blog
	if err := h.db.Order("published_at desc").Find(&blogs).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": blogs})
}

// LatestBlogs returns the newest posts for the landing page.
func (h *BlogHandler) LatestBlogs(c *fiber.Ctx) error {
	var blogs []models.Blog
	if err := h.db.Order("published_at desc").Limit(4).Find(&blogs).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": blogs})
}

// GetBlog returns a single post.
func (h *BlogHandler) GetBlog(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var blog models.Blog
	if err := h.db.First(&blog, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "blog not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": blog})
}

// VisitBlog bumps the visit counter, once per detail-page view.
func (h *BlogHandler) VisitBlog(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("visits", gorm.Expr("visits + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "blog not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

type blogRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image"`
}

// CreateBlog publishes a post authored by the signed-in admin or agent.
func (h *BlogHandler) CreateBlog(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req blogRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title == "" || req.Content == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title and content are required")
	}

	var author models.User
	if err := h.db.First(&author, "email = ?", email).Error; err != nil {
		return err
	}

	blog := models.Blog{
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		PublishedAt: time.Now(),
	}

	if err := h.db.Create(&blog).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": blog})
}

// UpdateBlog edits any post (admin).
func (h *BlogHandler) UpdateBlog(c *fiber.Ctx) error {
	return h.updateBlog(c, "")
}

// UpdateAgentBlog edits a post only when the caller authored it.
func (h *BlogHandler) UpdateAgentBlog(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return h.updateBlog(c, email)
}

func (h *BlogHandler) updateBlog(c *fiber.Ctx, ownerEmail string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var blog models.Blog
	if err := h.db.First(&blog, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "blog not found")
		}
		return err
	}

	if ownerEmail != "" && blog.AuthorEmail != ownerEmail {
		return fiber.NewError(fiber.StatusForbidden, "you may only edit your own posts")
	}

	var req blogRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Content != "" {
		blog.Content = req.Content
	}
	if req.ImageURL != "" {
		blog.ImageURL = req.ImageURL
	}

	if err := h.db.Save(&blog).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": blog})
}

// DeleteBlog removes any post (admin).
func (h *BlogHandler) DeleteBlog(c *fiber.Ctx) error {
	return h.deleteBlog(c, "")
}

// DeleteAgentBlog removes a post only when the caller authored it.
func (h *BlogHandler) DeleteAgentBlog(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return h.deleteBlog(c, email)
}

func (h *BlogHandler) deleteBlog(c *fiber.Ctx, ownerEmail string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var blog models.Blog
	if err := h.db.First(&blog, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "blog not found")
		}
		return err
	}

	if ownerEmail != "" && blog.AuthorEmail != ownerEmail {
		return fiber.NewError(fiber.StatusForbidden, "you may only delete your own posts")
	}

	if err := h.db.Delete(&blog).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

// ListAgentBlogs returns an agent's own posts.
func (h *BlogHandler) ListAgentBlogs(c *fiber.Ctx) error {
	email, ok := middleware.GetCurrentEmail(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	paramEmail := c.Params("email")
	role, _ := middleware.GetCurrentRole(c)
	if paramEmail != email && role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	var blogs []models.Blog
	if err := h.db.Where("author_email = ?", paramEmail).
		Order("published_at desc").
		Find(&blogs).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": blogs})
}
