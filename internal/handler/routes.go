package handler

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the full HTTP surface: API routes, health check and the
// static front-end in assets.
func NewRouter(h *ActivityHandler, assets fs.FS, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(logger))
	r.Use(CORS)

	r.Get("/health", h.HealthCheck)

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.ListActivities)
		r.Post("/{activityName}/signup", h.Signup)
		r.Post("/{activityName}/unregister", h.Unregister)
		r.Delete("/{activityName}/unregister", h.Unregister)
	})

	r.Get("/", RedirectToIndex)
	r.Get("/static/index.html", Index(assets))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets))))

	return r
}
