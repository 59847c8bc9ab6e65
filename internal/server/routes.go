package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"austender/internal/handlers"
)

// Store is everything the routes need from the data store.
type Store interface {
	handlers.SpendingStore
	handlers.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(store Store) {
	homeHandler := handlers.NewHomeHandler(s.Cfg)
	spendingHandler := handlers.NewSpendingHandler(store)
	probeHandler := handlers.NewProbeHandler(store)

	s.App.Get("/", homeHandler.Index)
	s.App.Get("/departments", spendingHandler.Departments)
	s.App.Get("/data", spendingHandler.Data)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
