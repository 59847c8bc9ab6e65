package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"austender/internal/models"
)

// SpendingStore runs the spending aggregations. *db.DB satisfies it.
type SpendingStore interface {
	DepartmentTotals(ctx context.Context) ([]models.DepartmentTotal, error)
	TopCategories(ctx context.Context, department *string) ([]models.CategorySpend, error)
}

// SpendingHandler serves the spending JSON endpoints.
type SpendingHandler struct {
	store SpendingStore
}

// NewSpendingHandler creates a new spending handler.
func NewSpendingHandler(store SpendingStore) *SpendingHandler {
	return &SpendingHandler{store: store}
}

// Departments returns every agency with its total spend, largest first.
func (h *SpendingHandler) Departments(c fiber.Ctx) error {
	totals, err := h.store.DepartmentTotals(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(totals)
}

// Data returns the top five categories for the agency named by the
// department query parameter. A missing parameter is passed on as nil so it
// matches no agency, not even one named "".
func (h *SpendingHandler) Data(c fiber.Ctx) error {
	var department *string
	if c.Request().URI().QueryArgs().Has("department") {
		name := c.Query("department")
		department = &name
	}

	categories, err := h.store.TopCategories(c.Context(), department)
	if err != nil {
		return err
	}
	return c.JSON(categories)
}
