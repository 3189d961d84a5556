package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/campaigns/suggest", h.SuggestCampaigns)
		r.Get("/historical-data/events", h.HistoricalEvents)
		r.Get("/media-data/performance", h.MediaPerformance)
		r.Get("/knowledge", h.Knowledge)

		r.Route("/data", func(r chi.Router) {
			r.Post("/upload-event", h.UploadEvent)
			r.Post("/upload-media", h.UploadMedia)
			r.Post("/upload-knowledge", h.UploadKnowledge)
		})
	})

	return r
}
