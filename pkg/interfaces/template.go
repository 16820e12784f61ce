package interfaces

import (
	"io"
)

// TemplateRenderer turns a named view plus data into markup. Implementations
// must be safe for concurrent use.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
