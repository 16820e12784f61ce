package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-filecms/internal/markdown"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"history.txt": KindPlainText,
		"about.md":    KindMarkdown,
	}
	for name, want := range cases {
		got, err := KindOf(name)
		if err != nil || got != want {
			t.Fatalf("KindOf(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := KindOf("script.rb"); !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}

func TestRenderPlainTextIsByteIdentical(t *testing.T) {
	r := New(nil)
	raw := []byte("1993 - Yukihiro Matsumoto dreams up Ruby.\n**not markdown**")

	got, err := r.Render("history.txt", raw)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.ContentType != "text/plain" {
		t.Fatalf("expected text/plain, got %q", got.ContentType)
	}
	if !bytes.Equal(got.Body, raw) {
		t.Fatalf("expected body unchanged, got %q", got.Body)
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := New(markdown.NewGoldmarkParser(interfaces.ParseOptions{}))

	got, err := r.Render("about.md", []byte("**programming**"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Kind != KindMarkdown || !strings.HasPrefix(got.ContentType, "text/html") {
		t.Fatalf("unexpected content %+v", got)
	}
	if !strings.Contains(string(got.Body), "<strong>programming</strong>") {
		t.Fatalf("expected strong tag, got %q", got.Body)
	}
	if got.Title != "about.md" {
		t.Fatalf("expected name as title, got %q", got.Title)
	}
}

func TestRenderMarkdownUsesFrontMatterTitle(t *testing.T) {
	got, err := New(nil).Render("about.md", []byte("---\ntitle: About\n---\n# Hi\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Title != "About" {
		t.Fatalf("expected front matter title, got %q", got.Title)
	}
	if strings.Contains(string(got.Body), "title:") {
		t.Fatalf("expected front matter to be stripped, got %q", got.Body)
	}
}

func TestRenderMarkdownWithLeadingRule(t *testing.T) {
	got, err := New(nil).Render("notes.md", []byte("---\nChapter one\n---\n**x**\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Title != "notes.md" {
		t.Fatalf("expected name as title, got %q", got.Title)
	}
	body := string(got.Body)
	if !strings.Contains(body, "Chapter one</h2>") || !strings.Contains(body, "<strong>x</strong>") {
		t.Fatalf("expected heading and emphasis, got %q", body)
	}
}

type failingParser struct{}

func (failingParser) Parse([]byte) ([]byte, error) { return nil, errors.New("boom") }
func (failingParser) ParseWithOptions([]byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestRenderPropagatesParserErrors(t *testing.T) {
	if _, err := New(failingParser{}).Render("about.md", []byte("x")); err == nil {
		t.Fatal("expected parser error")
	}
}

func TestRenderRejectsUnknownExtension(t *testing.T) {
	if _, err := New(nil).Render("notes.rb", []byte("x")); !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}
