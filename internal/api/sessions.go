package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/transparenta/autoeval/internal/catalog"
	"github.com/transparenta/autoeval/internal/events"
	"github.com/transparenta/autoeval/internal/session"
)

type SessionsHandler struct {
	sessions *session.Manager
	catalog  *catalog.Catalog
	events   events.Client
}

func NewSessionsHandler(s *session.Manager, c *catalog.Catalog, ev events.Client) *SessionsHandler {
	return &SessionsHandler{sessions: s, catalog: c, events: ev}
}

type CreateSessionRequest struct {
	Organization string `json:"organization"`
	Evaluator    string `json:"evaluator"`
}

type sessionSummary struct {
	SessionID    string `json:"session_id"`
	Organization string `json:"organization"`
	Evaluator    string `json:"evaluator"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	Answered     int    `json:"answered"`
	TotalItems   int    `json:"total_items"`
}

func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Organization == "" || req.Evaluator == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "organization and evaluator required"})
		return
	}

	s := h.sessions.Create(req.Organization, req.Evaluator, h.catalog.Len())

	if h.events != nil {
		_ = h.events.Publish(events.SubjectSessionCreated(s.ID.String()), events.SessionCreatedEvent{
			SessionID:    s.ID.String(),
			Organization: s.Organization,
			Evaluator:    s.Evaluator,
			TotalItems:   h.catalog.Len(),
			CreatedAt:    s.CreatedAt,
		})
	}

	writeJSON(w, http.StatusCreated, summarize(s))
}

func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summarize(s))
}

func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	answered, _ := s.Progress()
	if err := h.sessions.Delete(s.ID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectSessionEnded(s.ID.String()), events.SessionEndedEvent{
			SessionID: s.ID.String(),
			Answered:  answered,
		})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

func (h *SessionsHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	return lookupSession(w, r, h.sessions)
}

func lookupSession(w http.ResponseWriter, r *http.Request, m *session.Manager) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return nil, false
	}
	s, err := m.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		} else {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return nil, false
	}
	return s, true
}

func summarize(s *session.Session) sessionSummary {
	answered, total := s.Progress()
	return sessionSummary{
		SessionID:    s.ID.String(),
		Organization: s.Organization,
		Evaluator:    s.Evaluator,
		CreatedAt:    s.CreatedAt.Format(timeLayout),
		UpdatedAt:    s.UpdatedAt().Format(timeLayout),
		Answered:     answered,
		TotalItems:   total,
	}
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
