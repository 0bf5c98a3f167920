package structure

import (
	"maps"
	"strings"
)

// Descriptor is a single element's declarative definition. Empty strings are
// treated as absent values; the tree builder fills ID and Name when missing.
// Attrs carries every caller field without a dedicated slot (label, value,
// options, placeholder, ...) and is forwarded untouched to templates and the
// element factory.
type Descriptor struct {
	ID          string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Type        string         `json:"type,omitempty" yaml:"type,omitempty"`
	Parent      string         `json:"parent,omitempty" yaml:"parent,omitempty"`
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Scroll      bool           `json:"scroll,omitempty" yaml:"scroll,omitempty"`
	Master      string         `json:"master,omitempty" yaml:"master,omitempty"`
	View        string         `json:"view,omitempty" yaml:"view,omitempty"`
	HTML        string         `json:"html,omitempty" yaml:"html,omitempty"`
	TitleInView string         `json:"title_in_view,omitempty" yaml:"title_in_view,omitempty"`
	Attrs       map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Reserved argument names produced by Args. Attrs never override them.
const (
	ArgID          = "id"
	ArgName        = "name"
	ArgType        = "type"
	ArgParent      = "parent"
	ArgTitle       = "title"
	ArgDescription = "description"
	ArgScroll      = "scroll"
	ArgMaster      = "master"
	ArgView        = "view"
	ArgHTML        = "html"
	ArgTitleInView = "title_in_view"
)

// Kind resolves the structural kind of the descriptor's type.
func (d Descriptor) Kind() Kind {
	return ResolveKind(d.Type)
}

// Attr returns a caller attribute.
func (d Descriptor) Attr(key string) (any, bool) {
	if d.Attrs == nil {
		return nil, false
	}
	value, ok := d.Attrs[key]
	return value, ok
}

// StringAttr returns a caller attribute rendered as a trimmed string.
func (d Descriptor) StringAttr(key string) string {
	value, ok := d.Attr(key)
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return strings.TrimSpace(str)
	}
	return strings.TrimSpace(toString(value))
}

// WithAttr returns a copy of the descriptor with the attribute set.
func (d Descriptor) WithAttr(key string, value any) Descriptor {
	out := d.Clone()
	if out.Attrs == nil {
		out.Attrs = make(map[string]any, 1)
	}
	out.Attrs[key] = value
	return out
}

// Clone returns a copy whose Attrs map can be mutated independently.
func (d Descriptor) Clone() Descriptor {
	out := d
	if d.Attrs != nil {
		out.Attrs = maps.Clone(d.Attrs)
	}
	return out
}

// Args merges the descriptor over the default view arguments. The result is
// the variable context templates and element definitions receive.
func (d Descriptor) Args() map[string]any {
	args := make(map[string]any, len(d.Attrs)+11)
	for key, value := range d.Attrs {
		args[key] = value
	}
	args[ArgID] = d.ID
	args[ArgName] = d.Name
	args[ArgType] = d.Type
	args[ArgParent] = d.Parent
	args[ArgTitle] = d.Title
	args[ArgDescription] = d.Description
	args[ArgScroll] = d.Scroll
	args[ArgMaster] = d.Master
	args[ArgView] = d.View
	args[ArgHTML] = d.HTML
	if d.TitleInView != "" {
		args[ArgTitleInView] = d.TitleInView
	}
	return args
}
