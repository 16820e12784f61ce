package http

import (
	"net/http"

	"github.com/goliatone/go-filecms/internal/auth"
	"github.com/goliatone/go-filecms/internal/views"
)

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	page := views.Page{Documents: snapshotFrom(r.Context()).Names()}
	if sessionFrom(r).SignedIn() {
		s.renderPage(w, r, http.StatusOK, views.Index, page)
		return
	}
	s.renderPage(w, r, http.StatusOK, views.SignedOut, page)
}

func (s *Server) signInForm(w http.ResponseWriter, r *http.Request) {
	if sessionFrom(r).SignedIn() {
		redirectHome(w, r)
		return
	}
	s.renderPage(w, r, http.StatusOK, views.SignIn, views.Page{Title: "Sign In"})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, ok := s.credentials.Verify(r.Context(), username, password)
	if !ok {
		session.SetFlash(auth.MessageInvalidCredentials)
		s.renderPage(w, r, http.StatusUnprocessableEntity, views.SignIn, views.Page{
			Title:    "Sign In",
			Username: username,
		})
		return
	}

	auth.SignIn(session, user)
	redirectHome(w, r)
}

func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	auth.SignOut(sessionFrom(r))
	redirectHome(w, r)
}
