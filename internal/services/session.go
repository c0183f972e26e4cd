package services

import (
	"sync"

	"github.com/google/uuid"

	"shipdate-policy-service/internal/ports"
)

// MessageRecorder collects alerts raised while handling one event. It
// is the Notifier implementation used by the HTTP rendition, where the
// host applies messages after the event returns instead of showing a
// modal dialog.
type MessageRecorder struct {
	messages []string
}

func (r *MessageRecorder) Alert(message string) {
	r.messages = append(r.messages, message)
}

// Drain returns the collected messages and resets the recorder.
func (r *MessageRecorder) Drain() []string {
	out := r.messages
	r.messages = nil
	return out
}

var _ ports.Notifier = (*MessageRecorder)(nil)

// Session is one editing session: a form controller with its own
// calendar cache and message recorder. Hosts deliver one event at a
// time per session; the mutex serializes events that arrive over HTTP
// concurrently. Re-entrant event delivery from the same host is a
// documented limitation, not guarded here.
type Session struct {
	ID string

	mu         sync.Mutex
	controller *FormController
	recorder   *MessageRecorder
}

// Handle runs fn against the session's controller and returns the
// alerts it raised, in order.
func (s *Session) Handle(fn func(c *FormController)) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recorder.Drain()
	fn(s.controller)
	return s.recorder.Drain()
}

// SessionRegistry owns the live editing sessions. Session state
// (calendar caches, distance memos) lives exactly as long as its
// session.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	newController func(notifier ports.Notifier) *FormController
}

// NewSessionRegistry builds a registry; the factory constructs a fresh
// controller (with a fresh calendar cache) per session.
func NewSessionRegistry(factory func(notifier ports.Notifier) *FormController) *SessionRegistry {
	return &SessionRegistry{
		sessions:      make(map[string]*Session),
		newController: factory,
	}
}

// Create opens a new editing session.
func (r *SessionRegistry) Create() *Session {
	recorder := &MessageRecorder{}
	s := &Session{
		ID:         uuid.NewString(),
		controller: r.newController(recorder),
		recorder:   recorder,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

// Get looks up a live session.
func (r *SessionRegistry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete ends a session, discarding its caches.
func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
