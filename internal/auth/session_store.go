package auth

import (
	"sync"
	"time"
)

// SessionStore abstracts session persistence so sessions can live in memory
// (default) or in a shared backend.
type SessionStore interface {
	// Get returns a copy of the session for token. Expired sessions are
	// reported as missing.
	Get(token string) (*Session, bool)
	// Put creates or replaces the session for token.
	Put(token string, session *Session)
	// Delete removes the session for token.
	Delete(token string)
}

// MemorySessionStore keeps sessions in a map and expires them after ttl of
// inactivity. A zero ttl disables expiry. Expired entries are evicted on Get
// and swept from Put at most once per ttl.
type MemorySessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore returns an empty store.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: map[string]*Session{},
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemorySessionStore) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	if m.expired(session) {
		delete(m.sessions, token)
		return nil, false
	}
	return session.clone(), true
}

func (m *MemorySessionStore) Put(token string, session *Session) {
	if session == nil {
		return
	}
	stored := session.clone()
	stored.Token = token
	stored.LastSeen = m.now()
	stored.fresh = false

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = stored
	if m.ttl > 0 && stored.LastSeen.Sub(m.lastSweep) >= m.ttl {
		m.sweepLocked()
	}
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *MemorySessionStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked()
}

func (m *MemorySessionStore) sweepLocked() int {
	m.lastSweep = m.now()
	if m.ttl <= 0 {
		return 0
	}
	removed := 0
	for token, session := range m.sessions {
		if m.expired(session) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}

func (m *MemorySessionStore) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemorySessionStore) expired(session *Session) bool {
	return m.ttl > 0 && m.now().Sub(session.LastSeen) > m.ttl
}
