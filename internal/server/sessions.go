package server

import (
	"sync"
	"time"

	"mockmate/internal/errors"
	"mockmate/internal/session"

	"github.com/google/uuid"
)

// ManagedSession pairs a session with the lock that serializes access to
// it. Controller operations mutate the session, so every handler touching
// a session must hold its lock for the duration of the operation.
type ManagedSession struct {
	mu        sync.Mutex
	Session   *session.Session
	CreatedAt time.Time
}

// Lock acquires the per-session lock.
func (ms *ManagedSession) Lock() {
	ms.mu.Lock()
}

// Unlock releases the per-session lock.
func (ms *ManagedSession) Unlock() {
	ms.mu.Unlock()
}

// SessionStore is an in-memory store of interview sessions keyed by ID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*ManagedSession
	logger   *errors.Logger
}

// NewSessionStore creates an empty session store.
func NewSessionStore(logger *errors.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*ManagedSession),
		logger:   logger,
	}
}

// Create stores a new session and returns its generated ID.
func (st *SessionStore) Create(s *session.Session) string {
	id := uuid.NewString()

	st.mu.Lock()
	st.sessions[id] = &ManagedSession{
		Session:   s,
		CreatedAt: time.Now(),
	}
	st.mu.Unlock()

	if st.logger != nil {
		st.logger.Debug("Interview session created", "session_id", id)
	}
	return id
}

// Get returns the managed session for the given ID.
func (st *SessionStore) Get(id string) (*ManagedSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	ms, ok := st.sessions[id]
	return ms, ok
}

// Delete removes a session from the store.
func (st *SessionStore) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Count returns the number of stored sessions.
func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return len(st.sessions)
}
