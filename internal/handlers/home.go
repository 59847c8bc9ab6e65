package handlers

import (
	"github.com/gofiber/fiber/v3"

	"austender/internal/config"
	"austender/internal/models"
)

// HomeHandler serves the dashboard page.
type HomeHandler struct {
	cfg *config.Config
}

// NewHomeHandler creates a new home handler.
func NewHomeHandler(cfg *config.Config) *HomeHandler {
	return &HomeHandler{cfg: cfg}
}

// Index renders the dashboard shell. Data is fetched client-side from the
// JSON endpoints.
func (h *HomeHandler) Index(c fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title":       h.cfg.SiteTitle,
		"TopCategory": models.TopCategoryLimit,
	})
}
