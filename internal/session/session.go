package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/transparenta/autoeval/internal/catalog"
	"github.com/transparenta/autoeval/internal/scoring"
)

// ErrNotFound marks a lookup of a session that does not exist (or was ended).
var ErrNotFound = errors.New("session not found")

// Session holds one evaluator's in-memory answer set. Entries are created or
// overwritten only by a successful save; a rejected save never mutates.
// Lifetime is the evaluation session, nothing is persisted.
type Session struct {
	ID           uuid.UUID `json:"session_id"`
	Organization string    `json:"organization"`
	Evaluator    string    `json:"evaluator"`
	CreatedAt    time.Time `json:"created_at"`

	mu        sync.RWMutex
	updatedAt time.Time
	answers   map[string]scoring.AnswerRecord
	total     int
}

// SaveAnswer runs the validation gate and, on success, stores a copy of the
// record under the item's key. A failed gate returns the validation error and
// leaves the store untouched.
func (s *Session) SaveAnswer(item catalog.Item, rec scoring.AnswerRecord) error {
	if err := scoring.ValidateRecord(rec, item); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[item.Key] = rec.Clone()
	s.updatedAt = time.Now().UTC()
	return nil
}

// Answer returns a copy of the stored record for an item, if any. Re-opening
// an item for edit reproduces exactly what was saved.
func (s *Session) Answer(key string) (scoring.AnswerRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.answers[key]
	if !ok {
		return scoring.AnswerRecord{}, false
	}
	return rec.Clone(), true
}

// Answers returns a snapshot of the whole answer store.
func (s *Session) Answers() map[string]scoring.AnswerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]scoring.AnswerRecord, len(s.answers))
	for k, rec := range s.answers {
		out[k] = rec.Clone()
	}
	return out
}

// Progress returns how many items have a saved answer out of the catalog
// total.
func (s *Session) Progress() (answered, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.answers), s.total
}

// UpdatedAt returns the time of the last successful save, or the creation
// time if nothing was saved yet.
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Manager owns the live sessions of this process. Sessions exist only in
// memory and disappear on shutdown or explicit end.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session)}
}

// Create starts a new evaluation session for one organization and evaluator.
func (m *Manager) Create(organization, evaluator string, totalItems int) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:           uuid.New(),
		Organization: organization,
		Evaluator:    evaluator,
		CreatedAt:    now,
		updatedAt:    now,
		answers:      make(map[string]scoring.AnswerRecord),
		total:        totalItems,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete ends a session and discards its answer store.
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
