package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-uibuilder/pkg/elements"
	"github.com/goliatone/go-uibuilder/pkg/render/template"
	"github.com/goliatone/go-uibuilder/pkg/structure"
)

// Template context keys added on top of the descriptor arguments.
const (
	ContextClass    = "class"
	ContextChildren = "children"
	ContextTabs     = "tabs"
	ContextKey      = "key"
)

// Renderer turns a structure into markup by rendering each node through the
// view registered for its kind. Leaf controls are delegated to the element
// factory. A Renderer holds no per-render state and is safe for concurrent
// use when its collaborators are.
type Renderer struct {
	templates       template.TemplateRenderer
	factory         elements.Factory
	views           *Views
	themeViews      map[string]string
	theme           *theme.RendererConfig
	logger          *slog.Logger
	scrollClass     string
	strict          bool
	lenientElements bool
	sanitizer       *bluemonday.Policy
	metrics         *metrics
	tracer          trace.Tracer
	translator      Translator
	locale          string
	onMissing       MissingTranslationHandler
}

// New constructs a renderer. A nil factory falls back to the built-in element
// registry rendering through the same template renderer.
func New(templates template.TemplateRenderer, factory elements.Factory, opts ...Option) (*Renderer, error) {
	if templates == nil {
		return nil, errors.New("render: template renderer is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if factory == nil {
		factory = elements.NewFactory(templates, nil)
	}
	views := cfg.views
	if views == nil {
		views = DefaultViews()
	}

	m, err := newMetrics(cfg.registerer)
	if err != nil {
		return nil, fmt.Errorf("render: register metrics: %w", err)
	}

	r := &Renderer{
		templates:       templates,
		factory:         factory,
		views:           views,
		logger:          cfg.logger,
		scrollClass:     cfg.scrollClass,
		strict:          cfg.strict,
		lenientElements: cfg.lenientElements,
		sanitizer:       cfg.sanitizer,
		metrics:         m,
		tracer:          otel.Tracer(cfg.tracerName),
		translator:      cfg.translator,
		locale:          cfg.locale,
		onMissing:       cfg.onMissing,
	}

	themeCfg, err := resolveTheme(cfg.themeSelector, cfg.themeName, cfg.themeVariant)
	if err != nil {
		return nil, err
	}
	if themeCfg != nil {
		r.theme = themeCfg
		r.themeViews = themeViews(themeCfg)
		if err := templates.GlobalContext(map[string]any{"theme": themeGlobals(themeCfg)}); err != nil {
			return nil, fmt.Errorf("render: apply theme globals: %w", err)
		}
	}

	if r.translator != nil {
		if err := templates.GlobalContext(r.templateHelpers()); err != nil {
			return nil, fmt.Errorf("render: apply translation helpers: %w", err)
		}
	}

	return r, nil
}

// Theme returns the resolved theme configuration, nil when no theme is set.
func (r *Renderer) Theme() *theme.RendererConfig {
	return r.theme
}

// Views exposes the view registry.
func (r *Renderer) Views() *Views {
	return r.views
}

// Render builds the tree for s and renders it. An empty structure yields ""
// without touching any template. Line breaks and tabs are stripped from the
// result.
func (r *Renderer) Render(ctx context.Context, s *structure.Structure) (out string, err error) {
	if s.Empty() {
		return "", nil
	}

	ctx, span := r.tracer.Start(ctx, "uibuilder.render",
		trace.WithAttributes(attribute.Int("uibuilder.entries", s.Len())),
	)
	start := time.Now()
	defer func() {
		r.metrics.observeRender(start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	tree, err := structure.BuildTree(s)
	if err != nil {
		var cycle *structure.CycleError
		if !errors.As(err, &cycle) || r.strict {
			return "", fmt.Errorf("render: build tree: %w", err)
		}
		r.logger.Warn("render: skipping entries with cyclic parents", "keys", cycle.Keys)
	}
	span.SetAttributes(attribute.Int("uibuilder.nodes", tree.Count()))

	for _, node := range tree.Flatten() {
		r.localize(&node.Descriptor)
	}

	markup, err := r.build(ctx, tree)
	if err != nil {
		return "", err
	}
	return flatten(markup), nil
}

// RenderTo renders s and writes the markup to w.
func (r *Renderer) RenderTo(ctx context.Context, w io.Writer, s *structure.Structure) error {
	markup, err := r.Render(ctx, s)
	if err != nil {
		return err
	}
	if markup == "" {
		return nil
	}
	_, err = io.WriteString(w, markup)
	return err
}

// build renders siblings in order and concatenates their left-trimmed output.
func (r *Renderer) build(ctx context.Context, nodes []*structure.Node) (string, error) {
	var out strings.Builder
	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		markup, err := r.buildNode(ctx, node)
		if err != nil {
			return "", err
		}
		out.WriteString(ltrim(markup))
	}
	return out.String(), nil
}

func (r *Renderer) buildNode(ctx context.Context, node *structure.Node) (string, error) {
	d := node.Descriptor
	class := r.classFor(d)
	kind := d.Kind()
	hasChildren := node.HasChildren()

	if kind == structure.KindField && isComponentType(d.Type) {
		if r.strict {
			return "", &UnknownViewKindError{Kind: d.Type, Key: node.Key}
		}
		r.logger.Warn("render: component type has no kind, using control view", "type", d.Type, "key", node.Key)
		kind = structure.KindControl
	}

	var (
		children     string
		tabs         string
		childrenDone bool
	)

	switch kind {
	case structure.KindTabVertical, structure.KindTabHorizontal:
		if hasChildren {
			var strip strings.Builder
			for _, child := range node.Children {
				markup, err := r.renderView(ctx, ViewTabTitle, child.Key, child.Descriptor.Args())
				if err != nil {
					return "", err
				}
				strip.WriteString(ltrim(markup))
				child.Descriptor.Title = ""
			}
			tabs = strip.String()
		}
	case structure.KindToggle, structure.KindAccordion:
		for _, child := range node.Children {
			markup, err := r.renderView(ctx, ViewToggleTitle, child.Key, child.Descriptor.Args())
			if err != nil {
				return "", err
			}
			child.Descriptor.TitleInView = ltrim(markup)
		}
	case structure.KindSettings:
		if d.Title != "" {
			if d.TitleInView != "" {
				d.Title = d.TitleInView
			} else {
				markup, err := r.renderView(ctx, ViewSettingsTitle, node.Key, d.Args())
				if err != nil {
					return "", err
				}
				d.Title = ltrim(markup)
			}
		}
	case structure.KindHTML:
		children = r.sanitize(d.HTML)
		childrenDone = true
	case structure.KindField:
		d.Master = ""
		markup, err := r.renderElement(ctx, node.Key, d.WithAttr(ContextClass, class))
		if err != nil {
			return "", err
		}
		children = markup
		childrenDone = true
	}

	if hasChildren && !childrenDone {
		markup, err := r.build(ctx, node.Children)
		if err != nil {
			return "", err
		}
		children = markup
	}

	data := d.Args()
	data[ContextClass] = class
	data[ContextChildren] = children
	data[ContextTabs] = tabs
	data[ContextKey] = node.Key

	view, err := r.resolveView(node.Key, kind, d.View)
	if err != nil {
		return "", err
	}
	return r.renderView(ctx, view, node.Key, data)
}

// classFor concatenates the scroll class and master value without a
// separator.
func (r *Renderer) classFor(d structure.Descriptor) string {
	class := ""
	if d.Scroll {
		class += r.scrollClass
	}
	if d.Master != "" {
		class += d.Master
	}
	return class
}

func (r *Renderer) renderElement(ctx context.Context, key string, d structure.Descriptor) (string, error) {
	element, err := r.factory.Element(d.Type, d)
	if err == nil {
		var markup string
		if markup, err = element.Render(ctx); err == nil {
			return markup, nil
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	r.metrics.elementFailed(d.Type)
	elementErr := &ElementError{Type: d.Type, Key: key, Err: err}
	if r.lenientElements {
		r.logger.Warn("render: element failed, rendering empty markup", "key", key, "type", d.Type, "error", err)
		return "", nil
	}
	return "", elementErr
}

// resolveView picks the view for a node. An explicit view override wins;
// leaves use the control view; structural kinds without a registered view
// fall back to the control view.
func (r *Renderer) resolveView(key string, kind structure.Kind, override string) (string, error) {
	if override = strings.TrimSpace(override); override != "" {
		return override, nil
	}
	if kind == structure.KindField {
		return ViewControl, nil
	}
	if _, ok := r.lookupTemplate(kind.String()); ok {
		return kind.String(), nil
	}

	unknown := &UnknownViewKindError{Kind: kind.String(), Key: key}
	if r.strict {
		return "", unknown
	}
	r.logger.Warn("render: no view for kind, using control view", "kind", kind.String(), "key", key)
	return ViewControl, nil
}

// isComponentType reports wrapper types outside the known component kinds,
// such as the bare "component" stamped by keyed registration.
func isComponentType(typ string) bool {
	return typ == structure.TypeComponent || strings.HasPrefix(typ, structure.TypeComponent+"-")
}

func (r *Renderer) lookupTemplate(view string) (string, bool) {
	if tpl, ok := r.themeViews[view]; ok {
		return tpl, true
	}
	return r.views.Template(view)
}

// renderView renders a view with data. Views not present in the registry are
// treated as template names. Missing templates render empty output unless
// strict.
func (r *Renderer) renderView(ctx context.Context, view, key string, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tpl, ok := r.lookupTemplate(view)
	if !ok {
		tpl = view
	}

	if locator, ok := r.templates.(template.Locator); ok && !locator.HasTemplate(tpl) {
		return r.missingTemplate(view, tpl, key, template.ErrTemplateNotFound)
	}

	out, err := r.templates.RenderTemplate(tpl, data)
	if err != nil {
		if errors.Is(err, template.ErrTemplateNotFound) {
			return r.missingTemplate(view, tpl, key, err)
		}
		return "", fmt.Errorf("render: view %q (key %q): %w", view, key, err)
	}
	r.metrics.viewRendered(view)
	return out, nil
}

func (r *Renderer) missingTemplate(view, tpl, key string, cause error) (string, error) {
	r.metrics.templateMissing(view)
	missing := &MissingTemplateError{View: view, Template: tpl, Err: cause}
	if r.strict {
		return "", missing
	}
	r.logger.Warn("render: template not found, rendering empty output", "view", view, "template", tpl, "key", key)
	return "", nil
}

func ltrim(s string) string {
	return strings.TrimLeft(s, " \t\n\r\x00\x0b")
}

var flattener = strings.NewReplacer("\r\n", "", "\r", "", "\n", "", "\t", "")

// flatten strips line breaks and horizontal tabs.
func flatten(s string) string {
	return flattener.Replace(s)
}
