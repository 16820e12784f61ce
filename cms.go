package cms

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-filecms/internal/auth"
	"github.com/goliatone/go-filecms/internal/documents"
	cmshttp "github.com/goliatone/go-filecms/internal/http"
	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/internal/logging/console"
	"github.com/goliatone/go-filecms/internal/logging/gologger"
	"github.com/goliatone/go-filecms/internal/markdown"
	"github.com/goliatone/go-filecms/internal/render"
	"github.com/goliatone/go-filecms/internal/views"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// DocumentStore exports the document store contract.
type DocumentStore = interfaces.DocumentStore

// CredentialVerifier exports the sign-in verification contract.
type CredentialVerifier = interfaces.CredentialVerifier

// SessionStore exports the session persistence contract.
type SessionStore = auth.SessionStore

// Module represents the top level CMS runtime façade.
type Module struct {
	cfg            Config
	loggerProvider interfaces.LoggerProvider
	documents      interfaces.DocumentStore
	credentials    interfaces.CredentialVerifier
	sessionStore   auth.SessionStore
	sessions       *auth.Manager
	server         *cmshttp.Server
}

// Option overrides a collaborator that New would otherwise build from Config.
type Option func(*Module)

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.loggerProvider = provider
	}
}

// WithDocumentStore replaces the on-disk document store.
func WithDocumentStore(store interfaces.DocumentStore) Option {
	return func(m *Module) {
		m.documents = store
	}
}

// WithCredentialVerifier replaces the users file verifier.
func WithCredentialVerifier(verifier interfaces.CredentialVerifier) Option {
	return func(m *Module) {
		m.credentials = verifier
	}
}

// WithSessionStore replaces the in-memory session store.
func WithSessionStore(store auth.SessionStore) Option {
	return func(m *Module) {
		m.sessionStore = store
	}
}

// New constructs a CMS module using the provided configuration. The document
// directory and users file are resolved from the configured environment; a
// missing or malformed users file is reported here.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.loggerProvider == nil {
		provider, err := NewLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.loggerProvider = provider
	}

	if m.documents == nil {
		store, err := documents.NewFileStore(cfg.DocumentDir(),
			documents.WithLogger(logging.DocumentsLogger(m.loggerProvider)))
		if err != nil {
			return nil, fmt.Errorf("cms: open document store: %w", err)
		}
		m.documents = store
	}

	if m.credentials == nil {
		store, err := auth.NewCredentialStore(cfg.CredentialsFile(),
			auth.WithCredentialLogger(logging.AuthLogger(m.loggerProvider)))
		if err != nil {
			return nil, fmt.Errorf("cms: load credentials: %w", err)
		}
		m.credentials = store
	}

	if m.sessionStore == nil {
		m.sessionStore = auth.NewMemorySessionStore(cfg.Server.SessionTTL)
	}
	m.sessions = auth.NewManager(m.sessionStore,
		auth.WithCookieName(cfg.Server.SessionCookie),
		auth.WithCookieTTL(cfg.Server.SessionTTL),
		auth.WithManagerLogger(logging.AuthLogger(m.loggerProvider)),
	)

	pages, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("cms: load views: %w", err)
	}

	parser := markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: cfg.Markdown.Extensions,
		HardWraps:  cfg.Markdown.HardWraps,
		SafeMode:   cfg.Markdown.SafeMode,
	})

	m.server = cmshttp.NewServer(
		cmshttp.WithDocumentStore(m.documents),
		cmshttp.WithCredentials(m.credentials),
		cmshttp.WithSessions(m.sessions),
		cmshttp.WithViews(pages),
		cmshttp.WithContentRenderer(render.New(parser, render.WithLogger(logging.RenderLogger(m.loggerProvider)))),
		cmshttp.WithLogger(logging.HTTPLogger(m.loggerProvider)),
	)

	logging.ModuleLogger(m.loggerProvider, "cms").Info("cms.configured",
		"environment", cfg.Environment,
		"documents", cfg.DocumentDir(),
		"credentials", cfg.CredentialsFile(),
	)
	return m, nil
}

// Handler returns the routed HTTP handler.
func (m *Module) Handler() http.Handler {
	return m.server.Handler()
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Documents returns the configured document store.
func (m *Module) Documents() DocumentStore {
	return m.documents
}

// LoggerProvider exposes the provider used for module loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.loggerProvider
}

// NewLoggerProvider builds the provider selected by cfg.Provider.
func NewLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch normalizeProvider(cfg.Provider) {
	case "console":
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}
