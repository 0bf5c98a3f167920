package render

import (
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultScrollClass is appended to the class of descriptors with scroll set.
const DefaultScrollClass = "cherry-scroll"

// DefaultTracerName names the tracer used for render spans.
const DefaultTracerName = "github.com/goliatone/go-uibuilder/pkg/render"

// Option customises a Renderer.
type Option func(*config)

type config struct {
	logger          *slog.Logger
	views           *Views
	scrollClass     string
	strict          bool
	lenientElements bool
	sanitizer       *bluemonday.Policy
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	registerer      prometheus.Registerer
	tracerName      string
	translator      Translator
	locale          string
	onMissing       MissingTranslationHandler
}

func defaultConfig() config {
	return config{
		logger:      slog.Default(),
		scrollClass: DefaultScrollClass,
		tracerName:  DefaultTracerName,
	}
}

// WithLogger sets the structured logger used for recovered conditions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithViews replaces the view registry. Defaults to DefaultViews.
func WithViews(views *Views) Option {
	return func(c *config) {
		if views != nil {
			c.views = views
		}
	}
}

// WithScrollClass overrides the class emitted for scroll descriptors.
func WithScrollClass(class string) Option {
	return func(c *config) {
		c.scrollClass = strings.TrimSpace(class)
	}
}

// WithStrict turns recovered conditions (cyclic parents, unknown view kinds,
// missing templates) into returned errors.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithLenientElements renders empty markup for leaves whose element fails
// instead of aborting the render.
func WithLenientElements() Option {
	return func(c *config) {
		c.lenientElements = true
	}
}

// WithHTMLSanitizer cleans raw markup of html descriptors with the policy.
func WithHTMLSanitizer(policy *bluemonday.Policy) Option {
	return func(c *config) {
		c.sanitizer = policy
	}
}

// WithTheme resolves the named theme/variant through the selector. Templates
// registered under "uibuilder.<view>" override the matching views and the
// tokens are exposed to templates as the "theme" global.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(c *config) {
		c.themeSelector = selector
		c.themeName = strings.TrimSpace(name)
		c.themeVariant = strings.TrimSpace(variant)
	}
}

// WithMetrics registers render metrics on the registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = registerer
	}
}

// WithTracerName sets the OpenTelemetry tracer name used for render spans.
func WithTracerName(name string) Option {
	return func(c *config) {
		if name = strings.TrimSpace(name); name != "" {
			c.tracerName = name
		}
	}
}

// WithTranslator localises titleKey/descriptionKey attributes before
// rendering and exposes translate, translate_in and locale to templates.
func WithTranslator(t Translator, locale string) Option {
	return func(c *config) {
		c.translator = t
		c.locale = strings.TrimSpace(locale)
	}
}

// WithMissingTranslationHandler customises the string used when a key cannot
// be translated.
func WithMissingTranslationHandler(handler MissingTranslationHandler) Option {
	return func(c *config) {
		c.onMissing = handler
	}
}
