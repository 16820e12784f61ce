// Package render turns stored document bytes into a servable representation.
// The representation depends only on the document's extension.
package render

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/internal/markdown"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// Kind identifies how a document is served.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlainText
	KindMarkdown
)

func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "plain_text"
	case KindMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

const (
	ContentTypePlainText = "text/plain"
	ContentTypeHTML      = "text/html; charset=utf-8"
)

// ErrUnsupportedKind is returned for names without a known extension.
var ErrUnsupportedKind = errors.New("render: unsupported document kind")

// KindOf resolves the kind from the name suffix.
func KindOf(name string) (Kind, error) {
	switch {
	case strings.HasSuffix(name, ".txt"):
		return KindPlainText, nil
	case strings.HasSuffix(name, ".md"):
		return KindMarkdown, nil
	default:
		return KindUnknown, goerrors.Wrap(fmt.Errorf("%w: %s", ErrUnsupportedKind, name), goerrors.CategoryInternal, "cannot render "+name).
			WithTextCode("RENDER_KIND_UNSUPPORTED")
	}
}

// Content is a rendered document. For KindMarkdown, Body holds an HTML
// fragment that the caller embeds in the page layout; for KindPlainText it is
// the stored bytes unchanged.
type Content struct {
	Kind        Kind
	ContentType string
	Title       string
	Body        []byte
}

// Renderer dispatches on document kind.
type Renderer struct {
	parser interfaces.MarkdownParser
	logger interfaces.Logger
}

// Option mutates renderer configuration.
type Option func(*Renderer)

// WithLogger overrides the renderer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns a renderer that converts Markdown with parser.
func New(parser interfaces.MarkdownParser, opts ...Option) *Renderer {
	r := &Renderer{parser: parser, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.parser == nil {
		r.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{})
	}
	return r
}

// Render produces the servable form of a document.
func (r *Renderer) Render(name string, content []byte) (Content, error) {
	kind, err := KindOf(name)
	if err != nil {
		r.logger.Error("render.kind_unsupported", "document", name)
		return Content{}, err
	}

	switch kind {
	case KindPlainText:
		return Content{Kind: kind, ContentType: ContentTypePlainText, Title: name, Body: content}, nil
	case KindMarkdown:
		fm, body := markdown.ParseFrontMatter(content)
		html, err := r.parser.Parse(body)
		if err != nil {
			return Content{}, goerrors.Wrap(err, goerrors.CategoryInternal, "cannot render "+name)
		}
		title := fm.Title
		if title == "" {
			title = name
		}
		return Content{Kind: kind, ContentType: ContentTypeHTML, Title: title, Body: html}, nil
	default:
		return Content{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
}
