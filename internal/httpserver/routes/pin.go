package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkminder/linkminder/internal/httpserver/deps"
	"github.com/linkminder/linkminder/internal/httpserver/handlers"
)

func init() { Register(registerPin) }

func registerPin(r chi.Router, d deps.Deps) {
	r.Get("/api/pin", handlers.PinStatus(d))
	r.Put("/api/pin", handlers.SetPin(d))
	r.Post("/api/pin/verify", handlers.VerifyPin(d))
}
