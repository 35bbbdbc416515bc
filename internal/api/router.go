package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/ordo/internal/settings"
	"github.com/starford/ordo/internal/taskservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth
// group; events, if non-nil, receives mutation notifications.
func NewRouter(svc *taskservice.Service, st *settings.Store, authEnabled bool, token string, sseHandler http.Handler, events eventPublisher) chi.Router {
	h := NewHandler(svc, st, events)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Task listing and mutations.
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.AddTask)
	r.Post("/tasks/{index}/toggle", h.ToggleTask)
	r.Put("/tasks/{index}", h.EditTask)
	r.Post("/tasks/{index}/postpone", h.PostponeTask)

	// Settings blob.
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.PutSettings)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
