package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkminder/linkminder/internal/httpserver/deps"
	"github.com/linkminder/linkminder/internal/httpserver/handlers"
)

func init() { Register(registerRules) }

func registerRules(r chi.Router, d deps.Deps) {
	r.Get("/api/rules", handlers.ListRules(d))
	r.Post("/api/rules", handlers.UpsertRule(d))
	r.Put("/api/rules/{id}", handlers.UpdateRule(d))
	r.Delete("/api/rules/{id}", handlers.DeleteRule(d))
}
