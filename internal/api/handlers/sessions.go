package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shipdate-policy-service/internal/api/dto"
	"shipdate-policy-service/internal/services"
)

// SessionHandler manages the lifecycle of editing sessions. Each
// session owns its calendar cache, so calendars are fetched at most
// once per session and dropped when the session ends.
type SessionHandler struct {
	Registry *services.SessionRegistry
}

// Create opens a new editing session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.Registry.Create()
	writeJSON(w, r, http.StatusCreated, dto.SessionResponse{SessionID: s.ID})
}

// Delete ends an editing session. Deleting an unknown session is not
// an error; the host may retry teardown.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Registry.Delete(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}
