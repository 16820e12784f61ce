package auth

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

const DefaultCookieName = "cms_session"

// Manager binds sessions to browsers through an opaque cookie token.
type Manager struct {
	store  SessionStore
	cookie string
	ttl    time.Duration
	secure bool
	logger interfaces.Logger
}

// ManagerOption mutates manager configuration.
type ManagerOption func(*Manager)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) ManagerOption {
	return func(m *Manager) {
		if name != "" {
			m.cookie = name
		}
	}
}

// WithCookieTTL sets the cookie max age. Zero keeps a browser-session cookie.
func WithCookieTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// WithSecureCookie marks the cookie Secure.
func WithSecureCookie(secure bool) ManagerOption {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithManagerLogger overrides the manager logger.
func WithManagerLogger(logger interfaces.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager returns a manager persisting sessions in store.
func NewManager(store SessionStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		cookie: DefaultCookieName,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	if m.store == nil {
		m.store = NewMemorySessionStore(m.ttl)
	}
	return m
}

// Load resolves the session for r, starting a new one (and setting its
// cookie) when the request carries no known token. New sessions are only
// stored once they hold a user or a flash message.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(m.cookie); err == nil && cookie.Value != "" {
		if session, ok := m.store.Get(cookie.Value); ok {
			return session
		}
	}

	session := &Session{Token: uuid.NewString(), fresh: true}
	m.setCookie(w, session.Token)
	m.logger.WithContext(r.Context()).Debug("session.started")
	return session
}

// Save persists session changes made while handling a request. Sessions left
// without a user or a flash are dropped from the store.
func (m *Manager) Save(session *Session) {
	if session == nil || session.Token == "" {
		return
	}
	if session.empty() {
		if !session.fresh {
			m.store.Delete(session.Token)
		}
		return
	}
	m.store.Put(session.Token, session)
}

// Middleware loads the session before next runs, exposes it through the
// request context and saves it afterwards.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := m.Load(w, r)
		defer m.Save(session)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func (m *Manager) setCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     m.cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.ttl > 0 {
		cookie.MaxAge = int(m.ttl.Seconds())
	}
	http.SetCookie(w, cookie)
}
