package http

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-filecms/internal/auth"
	"github.com/goliatone/go-filecms/internal/documents"
	"github.com/goliatone/go-filecms/internal/views"
)

const contentTypeHTML = "text/html; charset=utf-8"

func sessionFrom(r *http.Request) *auth.Session {
	if session, ok := auth.SessionFrom(r.Context()); ok {
		return session
	}
	return &auth.Session{}
}

// renderPage fills in session data and writes view with status. The flash
// message is consumed only once the view has rendered.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, view string, page views.Page) {
	session := sessionFrom(r)
	page.User = session.User
	page.Flash, _ = session.PeekFlash()

	body, err := s.views.Render(view, page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	session.TakeFlash()
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

// requireSignedIn runs the sign-in guard and redirects home when it fails.
// Handlers return immediately on false.
func (s *Server) requireSignedIn(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.RequireSignedIn(sessionFrom(r)); err != nil {
		s.logger.WithContext(r.Context()).Info("request.auth_required", "error", err)
		redirectHome(w, r)
		return false
	}
	return true
}

// fail reports errors that are not recoverable within the request.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := mapError(err)
	s.logger.WithContext(r.Context()).Error("request.failed", "status", status, "error", err)
	http.Error(w, http.StatusText(status), status)
}

func mapError(err error) int {
	switch {
	case documents.IsValidation(err):
		return http.StatusUnprocessableEntity
	case goerrors.IsCategory(err, goerrors.CategoryAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
