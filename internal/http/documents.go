package http

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-filecms/internal/documents"
	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/internal/render"
	"github.com/goliatone/go-filecms/internal/views"
)

func documentName(r *http.Request) string {
	return chi.URLParam(r, "name")
}

// requireListed redirects home with a flash when name is not in the request
// snapshot.
func (s *Server) requireListed(w http.ResponseWriter, r *http.Request, name string) bool {
	if snapshotFrom(r.Context()).Has(name) {
		return true
	}
	sessionFrom(r).SetFlash(name + " does not exist.")
	redirectHome(w, r)
	return false
}

func (s *Server) newDocumentForm(w http.ResponseWriter, r *http.Request) {
	if !s.requireSignedIn(w, r) {
		return
	}
	s.renderPage(w, r, http.StatusOK, views.NewDocument, views.Page{Title: "New Document"})
}

func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	if !s.requireSignedIn(w, r) {
		return
	}
	name := r.PostFormValue("filename")

	if err := s.documents.Create(r.Context(), name); err != nil {
		if !documents.IsValidation(err) {
			s.fail(w, r, err)
			return
		}
		sessionFrom(r).SetFlash(documents.UserMessage(err))
		s.renderPage(w, r, http.StatusUnprocessableEntity, views.NewDocument, views.Page{
			Title:    "New Document",
			Filename: name,
		})
		return
	}

	sessionFrom(r).SetFlash(name + " was created.")
	redirectHome(w, r)
}

func (s *Server) showDocument(w http.ResponseWriter, r *http.Request) {
	name := documentName(r)
	if !s.requireListed(w, r, name) {
		return
	}

	raw, err := s.documents.Read(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	content, err := s.renderer.Render(name, raw)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	switch content.Kind {
	case render.KindPlainText:
		w.Header().Set("Content-Type", content.ContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content.Body)
	case render.KindMarkdown:
		s.renderPage(w, r, http.StatusOK, views.Document, views.Page{
			Title: content.Title,
			Body:  template.HTML(content.Body),
		})
	default:
		s.fail(w, r, render.ErrUnsupportedKind)
	}
}

func (s *Server) editDocumentForm(w http.ResponseWriter, r *http.Request) {
	if !s.requireSignedIn(w, r) {
		return
	}
	name := documentName(r)
	if !s.requireListed(w, r, name) {
		return
	}

	raw, err := s.documents.Read(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPage(w, r, http.StatusOK, views.Edit, views.Page{
		Title:    "Edit " + name,
		Filename: name,
		Contents: string(raw),
	})
}

func (s *Server) updateDocument(w http.ResponseWriter, r *http.Request) {
	if !s.requireSignedIn(w, r) {
		return
	}
	name := documentName(r)
	if !s.requireListed(w, r, name) {
		return
	}

	contents := r.PostFormValue("contents")
	if err := s.documents.Write(r.Context(), name, []byte(contents)); err != nil {
		s.fail(w, r, err)
		return
	}
	logging.WithDocumentContext(s.logger.WithContext(r.Context()), name, "update").Info("document.updated")

	sessionFrom(r).SetFlash(name + " has been updated.")
	redirectHome(w, r)
}

// deleteDocument does not consult the snapshot: deleting a missing name is
// reported as a failure by the store.
func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if !s.requireSignedIn(w, r) {
		return
	}
	name := documentName(r)

	if err := s.documents.Delete(r.Context(), name); err != nil {
		s.fail(w, r, err)
		return
	}
	logging.WithDocumentContext(s.logger.WithContext(r.Context()), name, "delete").Info("document.deleted")

	sessionFrom(r).SetFlash(name + " has been deleted.")
	redirectHome(w, r)
}
