// Package views renders the HTML pages of the CMS from embedded templates.
// Rendering is a pure function of the view name and the page data.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// View names.
const (
	Index       = "index"
	SignedOut   = "signed_out"
	SignIn      = "signin"
	NewDocument = "new"
	Edit        = "edit"
	Document    = "document"
)

const layoutFile = "templates/layout.html"

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data every view receives.
type Page struct {
	Title     string
	Flash     string
	User      string
	Documents []string
	Username  string
	Filename  string
	Contents  string
	Body      template.HTML
}

// Renderer holds one template set per view, each combined with the layout.
type Renderer struct {
	sets map[string]*template.Template
}

var _ interfaces.TemplateRenderer = (*Renderer)(nil)

// New parses the embedded templates.
func New() (*Renderer, error) {
	return NewFromFS(templateFS)
}

// NewFromFS parses templates/*.html from fsys. Every file except the layout
// becomes a view named after the file.
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("views: list templates: %w", err)
	}

	sets := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		set, err := template.New(name).ParseFS(fsys, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		sets[name] = set
	}
	return &Renderer{sets: sets}, nil
}

// Render executes view with data inside the layout. The markup is returned
// and also written to out when provided.
func (r *Renderer) Render(name string, data any, out ...io.Writer) (string, error) {
	set, ok := r.sets[name]
	if !ok {
		return "", fmt.Errorf("views: unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("views: render %s: %w", name, err)
	}
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", fmt.Errorf("views: write %s: %w", name, err)
		}
	}
	return buf.String(), nil
}
