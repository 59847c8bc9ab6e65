package server

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"austender/internal/db"
	"austender/internal/metrics"
)

// errorHandler maps handler errors to JSON error responses. Data store
// outages become 503 and failed queries 500; neither is retried.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	switch {
	case errors.Is(err, db.ErrUnavailable):
		code = fiber.StatusServiceUnavailable
		message = "data store unavailable"
		metrics.RecordDBError(metrics.KindUnavailable)
	case errors.Is(err, db.ErrQuery):
		metrics.RecordDBError(metrics.KindQuery)
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
