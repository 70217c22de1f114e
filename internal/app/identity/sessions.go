package identity

import (
	"sync"

	"github.com/google/uuid"
)

// Session binds a session ID (carried in the identity token) to the NamedUser
// record created at sign-in. Destroying the session reverts the client to Guest.
type Session struct {
	ID   string
	User *NamedUser
}

// Identity returns the identity represented by the session.
func (s *Session) Identity() Identity {
	return Identity{User: s.User}
}

// Sessions is the in-memory session registry. Named-user state (including the
// try-on counter) lives only here; nothing survives a server restart, which
// matches the fabricated nature of the sign-in flow.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// SignIn fabricates a fresh NamedUser and registers a session for it.
// The usage counter always starts at zero, even when the same email signed in
// before in this process.
func (s *Sessions) SignIn(email, name string) *Session {
	sess := &Session{
		ID:   uuid.New().String(),
		User: NewNamedUser(email, name),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// SignOut destroys the session. Unknown IDs are a no-op.
func (s *Sessions) SignOut(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Get resolves a session ID to its session, or nil when the session no longer
// exists (signed out or server restarted); callers treat nil as Guest.
func (s *Sessions) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[id]
}
