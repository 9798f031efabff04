package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkminder/linkminder/internal/httpserver/deps"
	"github.com/linkminder/linkminder/internal/httpserver/handlers"
)

func init() { Register(registerSystem) }

func registerSystem(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
	r.Get("/api/stats", handlers.Stats(d))
	r.Post("/api/reclassify", handlers.Reclassify(d))
}
