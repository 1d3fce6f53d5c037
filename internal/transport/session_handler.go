package transport

import (
	"net/http"

	"bmg-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionResponse carries a freshly minted anonymous session id
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// SessionHandler mints session ids for clients that have none stored yet.
// Nothing is persisted; a session exists once something is written under its id.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// RegisterRoutes registers the session route
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/session", h.CreateSession)
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusCreated, SessionResponse{SessionID: uuid.NewString()})
}
