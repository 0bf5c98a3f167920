package uibuilder

import (
	"io/fs"

	"github.com/goliatone/go-uibuilder/pkg/builder"
	"github.com/goliatone/go-uibuilder/pkg/structure"
	"github.com/goliatone/go-uibuilder/pkg/views"
)

// Descriptor aliases structure.Descriptor so callers can register elements
// without importing the structure package.
type Descriptor = structure.Descriptor

// Entry is one keyed descriptor of a Set.
type Entry = structure.Entry

// Set is the keyed registration form.
type Set = structure.Set

// Structure is the ordered key to descriptor mapping rendered by a Builder.
type Structure = structure.Structure

// Builder pairs a registry with a renderer.
type Builder = builder.Builder

// New constructs a Builder rendering through the embedded templates unless
// options say otherwise.
func New(options ...builder.Option) (*builder.Builder, error) {
	return builder.New(options...)
}

// LoadStructure reads a YAML structure document from fsys.
func LoadStructure(fsys fs.FS, path string) (*structure.Structure, error) {
	return structure.LoadFS(fsys, path)
}

// EmbeddedViews exposes the built-in view and element templates so callers
// can copy or extend them.
func EmbeddedViews() fs.FS {
	return views.TemplatesFS()
}
