package api

import (
	"delivery-route-optimizer/internal/api/handlers"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"delivery-route-optimizer/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// geocoder may be nil.
func NewRouter(
	repo ports.PackageRepository,
	planner *services.Planner,
	geocoder ports.Geocoder,
	origin domain.UserPosition,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	pkgHandler := &handlers.PackageHandler{Repo: repo}
	tourHandler := &handlers.TourHandler{
		Repo:          repo,
		Planner:       planner,
		Geocoder:      geocoder,
		DefaultOrigin: origin,
	}

	r.Get("/health", handlers.Health)

	r.Route("/packages", func(r chi.Router) {
		r.Get("/", pkgHandler.List)
		r.Post("/", pkgHandler.Create)
		r.Post("/{id}/status", pkgHandler.UpdateStatus)
	})

	r.Route("/tours", func(r chi.Router) {
		r.Post("/optimize", tourHandler.Optimize)
		r.Post("/recalculate", tourHandler.Recalculate)
	})

	return r
}
