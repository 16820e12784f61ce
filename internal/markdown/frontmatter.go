package markdown

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// ParseFrontMatter splits an optional YAML front matter block from the
// Markdown body. Documents without front matter are returned unchanged, and
// so are documents whose leading "---" block is not a YAML mapping: a
// thematic break followed by a setext heading is plain Markdown.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte) {
	raw := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &raw)
	if err != nil {
		return interfaces.FrontMatter{}, source
	}

	fm := interfaces.FrontMatter{Raw: raw}
	if title, ok := raw["title"].(string); ok {
		fm.Title = strings.TrimSpace(title)
	}
	return fm, body
}
