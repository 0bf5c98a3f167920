package builder_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-uibuilder/pkg/builder"
	"github.com/goliatone/go-uibuilder/pkg/elements"
	"github.com/goliatone/go-uibuilder/pkg/render"
	"github.com/goliatone/go-uibuilder/pkg/structure"
	"github.com/goliatone/go-uibuilder/pkg/testsupport"
)

func newBuilder(t *testing.T, opts ...builder.Option) *builder.Builder {
	t.Helper()
	b, err := builder.New(opts...)
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	return b
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, out)
		}
	}
}

func TestBuilder_RendersRegisteredElements(t *testing.T) {
	b := newBuilder(t)

	b.RegisterSection(structure.Descriptor{ID: "general", Title: "General"})
	b.RegisterControl(structure.Set{{
		Key: "site_name",
		Descriptor: structure.Descriptor{
			Parent: "general",
			Type:   "text",
			Attrs:  map[string]any{"label": "Site name", "value": "Acme"},
		},
	}})

	out, err := b.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	assertContains(t, out,
		`<div class="uib-section" id="general">`,
		`<h2 class="uib-section__title">General</h2>`,
		`<div class="uib-control" data-control="general-site_name">`,
		`<label class="uib-ui-label" for="general-site_name">Site name</label>`,
		`<input type="text" id="general-site_name" name="general-site_name" class="uib-ui-text" value="Acme">`,
	)
	if strings.ContainsAny(out, "\n\t") {
		t.Fatalf("expected flattened markup, got %q", out)
	}
}

func TestBuilder_LoadedStructure(t *testing.T) {
	b := newBuilder(t)
	s := testsupport.MustLoadStructure(t, filepath.Join("testdata", "settings_page.yaml"))

	out, err := b.RenderStructure(context.Background(), s)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	assertContains(t, out,
		`<div class="uib-tab__tabs" role="tablist"><button type="button" class="uib-tab__button" data-content="tabs-identity" role="tab">`,
		`<span class="uib-tab__button-title">Identity</span>`,
		`<div class="uib-settings__description">Name and branding</div>`,
		`<option value="boxed" selected>Boxed</option>`,
		`<div class="uib-html"><p>Changes apply immediately.</p></div>`,
	)

	if strings.Contains(out, `uib-settings__title`) {
		t.Fatalf("tab strip should consume the settings title, got\n%s", out)
	}

	wide := strings.Index(out, `<option value="wide">Wide</option>`)
	boxed := strings.Index(out, `<option value="boxed" selected>Boxed</option>`)
	if wide < 0 || wide > boxed {
		t.Fatalf("expected options in document order wide, boxed, got\n%s", out)
	}

	tabs := strings.Index(out, `uib-tab--vertical`)
	note := strings.Index(out, `uib-html`)
	if tabs < 0 || note < 0 || tabs > note {
		t.Fatalf("expected sibling order tabs before note, got\n%s", out)
	}
}

func TestBuilder_LoadRegistersDocument(t *testing.T) {
	b := newBuilder(t)
	data, err := os.ReadFile(filepath.Join("testdata", "settings_page.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if err := b.Load(data, "settings_page.yaml"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.Registry().Len(); got != 6 {
		t.Fatalf("expected 6 registered entries, got %d", got)
	}
}

func TestBuilder_EmptyRegistry(t *testing.T) {
	b := newBuilder(t)

	out, err := b.Render(context.Background())
	if err != nil || out != "" {
		t.Fatalf("expected empty render, got %q, %v", out, err)
	}

	var buf bytes.Buffer
	if err := b.Emit(context.Background(), &buf); err != nil || buf.Len() != 0 {
		t.Fatalf("expected nothing emitted, got %q, %v", buf.String(), err)
	}
}

func TestBuilder_RenderStructureFallsBackToRegistry(t *testing.T) {
	b := newBuilder(t)
	b.RegisterHTML(structure.Descriptor{ID: "h1", HTML: "<b>hi</b>"})

	want, err := b.Render(context.Background())
	if err != nil || want == "" {
		t.Fatalf("render registry: %q, %v", want, err)
	}

	for name, s := range map[string]*structure.Structure{
		"nil":   nil,
		"empty": structure.New(),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := b.RenderStructure(context.Background(), s)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != want {
				t.Fatalf("expected registry markup\nwant: %s\ngot:  %s", want, got)
			}

			var buf bytes.Buffer
			if err := b.EmitStructure(context.Background(), &buf, s); err != nil {
				t.Fatalf("emit: %v", err)
			}
			if buf.String() != want {
				t.Fatalf("expected registry markup emitted, got %q", buf.String())
			}
		})
	}
}

func TestBuilder_EmitMatchesRender(t *testing.T) {
	b := newBuilder(t)
	b.RegisterHTML(structure.Descriptor{ID: "h1", HTML: "<b>hi</b>"})

	rendered, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		if err := b.Emit(context.Background(), w); err != nil {
			return "", err
		}
		return b.Render(context.Background())
	})
	if rendered != written {
		t.Fatalf("emit and render differ\nrender: %s\nemit:   %s", rendered, written)
	}
	if rendered != `<div class="uib-html"><b>hi</b></div>` {
		t.Fatalf("unexpected html markup %s", rendered)
	}
}

func TestBuilder_ResetClearsRegistry(t *testing.T) {
	b := newBuilder(t)
	b.RegisterSection(structure.Descriptor{ID: "s"})
	b.Reset()

	if b.Structure().Len() != 0 {
		t.Fatalf("expected empty structure after reset")
	}
}

func TestBuilder_CustomFactory(t *testing.T) {
	factory := elements.FactoryFunc(func(typ string, d structure.Descriptor) (elements.Element, error) {
		return elements.ElementFunc(func(context.Context) (string, error) {
			return "<custom-" + typ + ">", nil
		}), nil
	})
	b := newBuilder(t, builder.WithFactory(factory))
	b.RegisterControl(structure.Descriptor{ID: "c", Type: "slider"})

	out, err := b.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, out, `<custom-slider>`)
}

func TestBuilder_StrictRenderOption(t *testing.T) {
	b := newBuilder(t, builder.WithRenderOptions(render.WithStrict(true)))
	b.RegisterSection(structure.Set{
		{Key: "a", Descriptor: structure.Descriptor{Parent: "b"}},
		{Key: "b", Descriptor: structure.Descriptor{Parent: "a"}},
	})

	if _, err := b.Render(context.Background()); !errors.Is(err, structure.ErrCyclicParent) {
		t.Fatalf("expected cyclic parent error, got %v", err)
	}
}

func TestBuilder_ViewsDirOverridesEmbeddedTemplates(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "views"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := []byte(`<main id="{{ id }}">{{ children|safe }}</main>`)
	if err := os.WriteFile(filepath.Join(dir, "views", "section.tmpl"), override, 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	b := newBuilder(t, builder.WithViewsDir(dir))
	b.RegisterSection(structure.Descriptor{ID: "s"})
	b.RegisterHTML(structure.Descriptor{ID: "h", Parent: "s", HTML: "x"})

	out, err := b.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != `<main id="s"><div class="uib-html">x</div></main>` {
		t.Fatalf("unexpected markup %s", out)
	}
}
