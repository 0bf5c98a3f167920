package elements

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-uibuilder/pkg/render/template"
	"github.com/goliatone/go-uibuilder/pkg/structure"
)

// ErrUnknownElement is returned when no definition is registered for a type.
var ErrUnknownElement = errors.New("elements: unknown element type")

// Element produces markup for one leaf control.
type Element interface {
	Render(ctx context.Context) (string, error)
}

// ElementFunc adapts a function to the Element interface.
type ElementFunc func(ctx context.Context) (string, error)

// Render calls f(ctx).
func (f ElementFunc) Render(ctx context.Context) (string, error) {
	return f(ctx)
}

// Factory turns a control type plus its merged descriptor into an Element.
type Factory interface {
	Element(typ string, d structure.Descriptor) (Element, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(typ string, d structure.Descriptor) (Element, error)

// Element calls f(typ, d).
func (f FactoryFunc) Element(typ string, d structure.Descriptor) (Element, error) {
	return f(typ, d)
}

// RenderFunc writes an element's markup into buf. Implementations receive
// the merged descriptor and can render through data.Template or build markup
// directly.
type RenderFunc func(buf *bytes.Buffer, d structure.Descriptor, data ElementData) error

// ElementData carries helpers and definition configuration.
type ElementData struct {
	Template rendertemplate.TemplateRenderer
	Config   map[string]any
}

// Definition bundles a renderer with static configuration merged into
// ElementData.Config on every render. Options, when set, fills the
// descriptor's options attribute for descriptors that carry none.
type Definition struct {
	Name    string
	Render  RenderFunc
	Config  map[string]any
	Options OptionSource
}

// Registry tracks element definitions keyed by type. Callers can register new
// elements or override defaults.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		definitions: make(map[string]Definition),
	}
}

// Clone returns a deep copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, definition := range r.definitions {
		cloned.definitions[name] = cloneDefinition(definition)
	}
	return cloned
}

// Register associates a definition with the provided type name. Existing
// entries are replaced.
func (r *Registry) Register(name string, definition Definition) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("elements: element name is required")
	}
	if definition.Render == nil {
		return fmt.Errorf("elements: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	definition.Name = name
	r.definitions[name] = cloneDefinition(definition)
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(name string, definition Definition) {
	if err := r.Register(name, definition); err != nil {
		panic(err)
	}
}

// Definition fetches a definition by type name.
func (r *Registry) Definition(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	definition, ok := r.definitions[normalize(name)]
	if !ok {
		return Definition{}, false
	}
	return cloneDefinition(definition), true
}

// Names returns a sorted slice of registered element names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultFactory binds a registry to the template renderer its definitions
// render through.
type DefaultFactory struct {
	registry  *Registry
	templates rendertemplate.TemplateRenderer
}

var _ Factory = (*DefaultFactory)(nil)

// NewFactory constructs a factory. A nil registry falls back to
// NewDefaultRegistry.
func NewFactory(templates rendertemplate.TemplateRenderer, registry *Registry) *DefaultFactory {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	return &DefaultFactory{registry: registry, templates: templates}
}

// Registry exposes the bound registry.
func (f *DefaultFactory) Registry() *Registry {
	return f.registry
}

// Element resolves the definition for typ and returns an element rendering
// the descriptor through it.
func (f *DefaultFactory) Element(typ string, d structure.Descriptor) (Element, error) {
	definition, ok := f.registry.Definition(typ)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownElement, strings.TrimSpace(typ))
	}
	data := ElementData{
		Template: f.templates,
		Config:   definition.Config,
	}
	return ElementFunc(func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		desc := d
		if _, ok := desc.Attr("options"); !ok && definition.Options != nil {
			options, err := definition.Options.Options(ctx, OptionQuery{})
			if err != nil {
				return "", fmt.Errorf("elements: options for %q: %w", definition.Name, err)
			}
			desc = desc.WithAttr("options", options)
		}
		var buf bytes.Buffer
		if err := definition.Render(&buf, desc, data); err != nil {
			return "", fmt.Errorf("elements: render %q: %w", definition.Name, err)
		}
		return buf.String(), nil
	}), nil
}

func cloneDefinition(src Definition) Definition {
	return Definition{
		Name:    src.Name,
		Render:  src.Render,
		Config:  maps.Clone(src.Config),
		Options: src.Options,
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
