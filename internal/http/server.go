package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-filecms/internal/auth"
	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/internal/render"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// Server wires the document store, credentials, sessions and views into
// request handlers.
type Server struct {
	documents   interfaces.DocumentStore
	credentials interfaces.CredentialVerifier
	sessions    *auth.Manager
	views       interfaces.TemplateRenderer
	renderer    *render.Renderer
	logger      interfaces.Logger
}

// Option mutates the Server configuration.
type Option func(*Server)

// WithDocumentStore wires the document store.
func WithDocumentStore(store interfaces.DocumentStore) Option {
	return func(s *Server) {
		s.documents = store
	}
}

// WithCredentials wires the credential verifier used by sign-in.
func WithCredentials(verifier interfaces.CredentialVerifier) Option {
	return func(s *Server) {
		s.credentials = verifier
	}
}

// WithSessions overrides the session manager (defaults to in-memory sessions).
func WithSessions(manager *auth.Manager) Option {
	return func(s *Server) {
		if manager != nil {
			s.sessions = manager
		}
	}
}

// WithViews wires the page renderer.
func WithViews(views interfaces.TemplateRenderer) Option {
	return func(s *Server) {
		s.views = views
	}
}

// WithContentRenderer overrides the document content renderer.
func WithContentRenderer(renderer *render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithLogger overrides the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer constructs a Server. The document store, credentials and views
// are required; Handler panics without them.
func NewServer(opts ...Option) *Server {
	s := &Server{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.sessions == nil {
		s.sessions = auth.NewManager(nil)
	}
	if s.renderer == nil {
		s.renderer = render.New(nil)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	if s.documents == nil || s.credentials == nil || s.views == nil {
		panic("http: server requires a document store, credentials and views")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.sessions.Middleware)
	r.Use(s.takeSnapshot)

	r.Get("/", s.home)
	r.Route("/users", func(r chi.Router) {
		r.Get("/signin", s.signInForm)
		r.Post("/signin", s.signIn)
		r.Post("/signout", s.signOut)
	})
	r.Get("/new", s.newDocumentForm)
	r.Post("/new", s.createDocument)
	r.Get("/{name}", s.showDocument)
	r.Get("/{name}/edit", s.editDocumentForm)
	r.Post("/{name}/edit", s.updateDocument)
	r.Post("/{name}/delete", s.deleteDocument)
	return r
}
