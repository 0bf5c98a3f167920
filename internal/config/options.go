package config

import (
	"log/slog"

	"github.com/goliatone/go-uibuilder/components/timezones"
	"github.com/goliatone/go-uibuilder/pkg/builder"
	"github.com/goliatone/go-uibuilder/pkg/elements"
	"github.com/goliatone/go-uibuilder/pkg/render"
	"github.com/prometheus/client_golang/prometheus"
)

// ElementRegistry returns the built-in elements plus the timezone control.
func ElementRegistry() (*elements.Registry, error) {
	registry := elements.NewDefaultRegistry()
	if err := timezones.Register(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// BuilderOptions translates the project config into builder options.
// registerer may be nil to skip metrics.
func (c *Config) BuilderOptions(logger *slog.Logger, registerer prometheus.Registerer) ([]builder.Option, error) {
	registry, err := ElementRegistry()
	if err != nil {
		return nil, err
	}

	renderOpts := []render.Option{render.WithStrict(c.Strict)}
	if c.ScrollClass != "" {
		renderOpts = append(renderOpts, render.WithScrollClass(c.ScrollClass))
	}
	if c.SanitizeHTML {
		renderOpts = append(renderOpts, render.WithHTMLSanitizer(render.DefaultHTMLPolicy()))
	}
	if m := c.Manifest(); m != nil {
		renderOpts = append(renderOpts, render.WithTheme(render.StaticTheme{Manifest: m}, m.Name, c.Theme.Variant))
	}
	if registerer != nil {
		renderOpts = append(renderOpts, render.WithMetrics(registerer))
	}

	opts := []builder.Option{
		builder.WithLogger(logger),
		builder.WithElements(registry),
		builder.WithRenderOptions(renderOpts...),
	}
	if c.ViewsDir != "" {
		opts = append(opts, builder.WithViewsDir(c.ViewsDir))
	}
	return opts, nil
}
