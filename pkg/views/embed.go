package views

import (
	"embed"
	"io/fs"
)

//go:embed templates/views/*.tmpl templates/elements/*.tmpl
var embeddedTemplates embed.FS

// Extension is the file extension of the bundled templates.
const Extension = ".tmpl"

// TemplatesFS exposes the embedded view and element templates. Template names
// are relative to the returned filesystem, e.g. "views/section".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// Should never happen, but fall back to raw FS so templates remain usable.
		return embeddedTemplates
	}
	return sub
}
