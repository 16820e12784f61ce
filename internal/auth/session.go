package auth

import (
	"context"
	"time"
)

// Session is the per-browser state: an optional signed-in username and an
// optional one-shot flash message.
type Session struct {
	Token    string
	User     string
	Flash    *string
	LastSeen time.Time

	// fresh marks a session started by the current request.
	fresh bool
}

// SignedIn reports whether a user is attached to the session.
func (s *Session) SignedIn() bool {
	return s != nil && s.User != ""
}

// SetFlash replaces the pending flash message.
func (s *Session) SetFlash(message string) {
	s.Flash = &message
}

// TakeFlash returns the pending flash message and clears it. Only the render
// step calls this; setters never clear.
func (s *Session) TakeFlash() string {
	if s == nil || s.Flash == nil {
		return ""
	}
	message := *s.Flash
	s.Flash = nil
	return message
}

// PeekFlash returns the pending flash message without consuming it.
func (s *Session) PeekFlash() (string, bool) {
	if s == nil || s.Flash == nil {
		return "", false
	}
	return *s.Flash, true
}

// empty reports whether the session carries nothing worth persisting.
func (s *Session) empty() bool {
	return !s.SignedIn() && s.Flash == nil
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	copied := *s
	if s.Flash != nil {
		message := *s.Flash
		copied.Flash = &message
	}
	return &copied
}

type sessionContextKey struct{}

// WithSession attaches the request session to ctx.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFrom returns the session attached by the session middleware.
func SessionFrom(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}
