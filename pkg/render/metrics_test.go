package render

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-uibuilder/pkg/elements"
	"github.com/goliatone/go-uibuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-uibuilder/pkg/structure"
)

func TestMetrics_CountRendersAndMissingTemplates(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
		"views/section.tpl": {Data: []byte(`<section>{{ children|safe }}</section>`)},
	}))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	registry := prometheus.NewRegistry()
	renderer, err := New(engine, elements.NewFactory(engine, elements.New()), WithMetrics(registry))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	s := structure.New(
		structure.Entry{Key: "s", Descriptor: structure.Descriptor{ID: "s", Type: structure.TypeSection}},
		structure.Entry{Key: "h", Descriptor: structure.Descriptor{ID: "h", Type: structure.TypeHTML, HTML: "x"}},
	)
	if _, err := renderer.Render(context.Background(), s); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := testutil.ToFloat64(renderer.metrics.rendersTotal.WithLabelValues("ok")); got != 1 {
		t.Fatalf("expected one successful render, got %v", got)
	}
	if got := testutil.ToFloat64(renderer.metrics.viewsRendered.WithLabelValues("section")); got != 1 {
		t.Fatalf("expected one section view, got %v", got)
	}
	if got := testutil.ToFloat64(renderer.metrics.missingTemplates.WithLabelValues("html")); got != 1 {
		t.Fatalf("expected one missing html template, got %v", got)
	}

	unknown := structure.New(structure.Entry{Key: "x", Descriptor: structure.Descriptor{ID: "x", Type: "nope"}})
	if _, err := renderer.Render(context.Background(), unknown); err == nil {
		t.Fatalf("expected element error for unregistered type")
	}
	if got := testutil.ToFloat64(renderer.metrics.elementErrors.WithLabelValues("nope")); got != 1 {
		t.Fatalf("expected element error counted, got %v", got)
	}
	if got := testutil.ToFloat64(renderer.metrics.rendersTotal.WithLabelValues("error")); got != 1 {
		t.Fatalf("expected one failed render, got %v", got)
	}
}

func TestMetrics_SharedRegistererReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()

	first, err := newMetrics(registry)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := newMetrics(registry)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.rendersTotal != second.rendersTotal {
		t.Fatalf("expected collectors to be reused across renderers")
	}

	var nilMetrics *metrics
	nilMetrics.viewRendered("section")
}
