package template

import (
	"errors"
	"io"
)

// ErrTemplateNotFound is wrapped by renderers when the requested template does
// not exist in any configured source.
var ErrTemplateNotFound = errors.New("template: not found")

// TemplateRenderer is the seam views and elements render through. Names are
// extension-less paths such as "views/section" or "elements/select".
type TemplateRenderer interface {
	// RenderTemplate executes the named template with data. The result is
	// also written to every out writer.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// GlobalContext merges data into the values visible to every template.
	GlobalContext(data any) error
}

// Locator is implemented by renderers that can report whether a template
// exists without executing it.
type Locator interface {
	HasTemplate(name string) bool
}
