package builder

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/goliatone/go-uibuilder/pkg/elements"
	"github.com/goliatone/go-uibuilder/pkg/render"
	"github.com/goliatone/go-uibuilder/pkg/render/template"
	"github.com/goliatone/go-uibuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-uibuilder/pkg/structure"
	"github.com/goliatone/go-uibuilder/pkg/views"
)

// Builder owns the registry for one interface and the renderer that turns it
// into markup. Register calls and the render that follows are expected to
// come from the same page render; the registry is still safe for concurrent
// use.
type Builder struct {
	registry *structure.Registry
	renderer *render.Renderer
	elements *elements.Registry
	logger   *slog.Logger
}

// Option customises a Builder.
type Option func(*config)

type config struct {
	templates  template.TemplateRenderer
	viewsDir   string
	viewsFS    fs.FS
	factory    elements.Factory
	elements   *elements.Registry
	logger     *slog.Logger
	renderOpts []render.Option
}

// WithTemplates renders views and elements through the provided renderer
// instead of the embedded templates.
func WithTemplates(templates template.TemplateRenderer) Option {
	return func(c *config) {
		c.templates = templates
	}
}

// WithViewsDir loads templates from dir first, falling back to the embedded
// templates for anything the directory does not provide.
func WithViewsDir(dir string) Option {
	return func(c *config) {
		c.viewsDir = dir
	}
}

// WithViewsFS replaces the embedded template bundle.
func WithViewsFS(fsys fs.FS) Option {
	return func(c *config) {
		c.viewsFS = fsys
	}
}

// WithFactory sets the element factory used for leaf controls.
func WithFactory(factory elements.Factory) Option {
	return func(c *config) {
		c.factory = factory
	}
}

// WithElements sets the element registry backing the default factory.
func WithElements(registry *elements.Registry) Option {
	return func(c *config) {
		c.elements = registry
	}
}

// WithLogger sets the logger shared with the renderer.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRenderOptions forwards options to the renderer.
func WithRenderOptions(opts ...render.Option) Option {
	return func(c *config) {
		c.renderOpts = append(c.renderOpts, opts...)
	}
}

// New constructs a Builder with an empty registry.
func New(opts ...Option) (*Builder, error) {
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	templates := cfg.templates
	if templates == nil {
		engine, err := newEngine(cfg.viewsDir, cfg.viewsFS)
		if err != nil {
			return nil, err
		}
		templates = engine
	}

	factory := cfg.factory
	if factory == nil {
		if cfg.elements == nil {
			cfg.elements = elements.NewDefaultRegistry()
		}
		factory = elements.NewFactory(templates, cfg.elements)
	}

	renderOpts := append([]render.Option{render.WithLogger(cfg.logger)}, cfg.renderOpts...)
	renderer, err := render.New(templates, factory, renderOpts...)
	if err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}

	return &Builder{
		registry: structure.NewRegistry(),
		renderer: renderer,
		elements: cfg.elements,
		logger:   cfg.logger,
	}, nil
}

func newEngine(dir string, fsys fs.FS) (*gotemplate.Engine, error) {
	if fsys == nil {
		fsys = views.TemplatesFS()
	}
	opts := []gotemplate.Option{
		gotemplate.WithFS(fsys),
		gotemplate.WithExtension(views.Extension),
	}
	if dir != "" {
		opts = append(opts, gotemplate.WithBaseDir(dir))
	}
	engine, err := gotemplate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("builder: template engine: %w", err)
	}
	return engine, nil
}

// RegisterSection registers section elements.
func (b *Builder) RegisterSection(in structure.Input) {
	b.registry.RegisterSection(in)
}

// RegisterComponent registers tab, toggle, accordion and repeater elements.
func (b *Builder) RegisterComponent(in structure.Input) {
	b.registry.RegisterComponent(in)
}

// RegisterSettings registers settings groups.
func (b *Builder) RegisterSettings(in structure.Input) {
	b.registry.RegisterSettings(in)
}

// RegisterControl registers leaf controls.
func (b *Builder) RegisterControl(in structure.Input) {
	b.registry.RegisterControl(in)
}

// RegisterHTML registers raw markup blocks.
func (b *Builder) RegisterHTML(in structure.Input) {
	b.registry.RegisterHTML(in)
}

// Load registers every group of a YAML structure document.
func (b *Builder) Load(data []byte, source string) error {
	return structure.LoadInto(b.registry, data, source)
}

// Registry exposes the underlying registry.
func (b *Builder) Registry() *structure.Registry {
	return b.registry
}

// Elements returns the element registry the default factory renders from.
// It is the registry passed to WithElements, nil when WithFactory is used
// without one.
func (b *Builder) Elements() *elements.Registry {
	return b.elements
}

// Renderer exposes the underlying renderer.
func (b *Builder) Renderer() *render.Renderer {
	return b.renderer
}

// Structure returns a snapshot of everything registered so far.
func (b *Builder) Structure() *structure.Structure {
	return b.registry.Structure()
}

// Reset clears the registry.
func (b *Builder) Reset() {
	b.registry.Reset()
}

// Render renders everything registered. An empty registry yields "".
func (b *Builder) Render(ctx context.Context) (string, error) {
	return b.RenderStructure(ctx, b.registry.Structure())
}

// RenderStructure renders s instead of the registry. A nil or empty s renders
// the registry.
func (b *Builder) RenderStructure(ctx context.Context, s *structure.Structure) (string, error) {
	out, err := b.renderer.Render(ctx, b.resolve(s))
	if err != nil {
		return "", fmt.Errorf("builder: %w", err)
	}
	return out, nil
}

// Emit renders everything registered and writes it to w.
func (b *Builder) Emit(ctx context.Context, w io.Writer) error {
	return b.EmitStructure(ctx, w, b.registry.Structure())
}

// EmitStructure renders s and writes it to w. A nil or empty s emits the
// registry.
func (b *Builder) EmitStructure(ctx context.Context, w io.Writer, s *structure.Structure) error {
	if err := b.renderer.RenderTo(ctx, w, b.resolve(s)); err != nil {
		return fmt.Errorf("builder: %w", err)
	}
	return nil
}

func (b *Builder) resolve(s *structure.Structure) *structure.Structure {
	if s.Empty() {
		return b.registry.Structure()
	}
	return s
}
