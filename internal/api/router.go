package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shipdate-policy-service/internal/api/handlers"
	"shipdate-policy-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay
// unaware of concrete adapters).
func NewRouter(registry *services.SessionRegistry) http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)

	sessionHandler := &handlers.SessionHandler{Registry: registry}
	eventHandler := &handlers.EventHandler{Registry: registry}

	r.Get("/health", handlers.Health)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.Create)
		r.Delete("/{sessionID}", sessionHandler.Delete)
		r.Post("/{sessionID}/events", eventHandler.Handle)
	})

	return r
}
