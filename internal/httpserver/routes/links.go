package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkminder/linkminder/internal/httpserver/deps"
	"github.com/linkminder/linkminder/internal/httpserver/handlers"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Post("/api/links", handlers.SaveLink(d))
	r.Get("/api/links", handlers.ListLinks(d))
	r.Get("/api/links/tree", handlers.Tree(d))
	r.Get("/api/links/graph", handlers.Graph(d))
	r.Delete("/api/links/{id}", handlers.DeleteLink(d))
	r.Post("/api/links/{id}/archive", handlers.ToggleArchive(d))
	r.Post("/api/links/{id}/private", handlers.TogglePrivate(d))
	r.Put("/api/links/{id}/note", handlers.UpdateNote(d))
}
