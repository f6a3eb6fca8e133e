package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/aegislife/internal/services"
)

const maxUploadBytes = 5 << 20

// UploadHandler accepts claim documents and stores them on the image host.
type UploadHandler struct {
	uploader *services.ImgBBService
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(uploader *services.ImgBBService) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// UploadDocument stores a supporting document and returns its hosted URL.
func (h *UploadHandler) UploadDocument(c *fiber.Ctx) error {
	file, err := c.FormFile("document")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "document file is required")
	}

	if file.Size > maxUploadBytes {
		return fiber.NewError(fiber.StatusBadRequest, "document exceeds the 5MB limit")
	}

	src, err := file.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unable to read document")
	}
	defer src.Close()

	url, err := h.uploader.Upload(file.Filename, src)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "document upload failed")
	}

	return c.JSON(fiber.Map{"success": true, "url": url})
}
