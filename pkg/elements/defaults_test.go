package elements

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uibuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-uibuilder/pkg/structure"
	"github.com/goliatone/go-uibuilder/pkg/views"
)

func newTestFactory(t *testing.T) *DefaultFactory {
	t.Helper()
	engine, err := gotemplate.New(
		gotemplate.WithFS(views.TemplatesFS()),
		gotemplate.WithExtension(views.Extension),
	)
	if err != nil {
		t.Fatalf("template engine: %v", err)
	}
	return NewFactory(engine, nil)
}

func renderElement(t *testing.T, factory *DefaultFactory, typ string, d structure.Descriptor) string {
	t.Helper()
	element, err := factory.Element(typ, d)
	if err != nil {
		t.Fatalf("element %q: %v", typ, err)
	}
	out, err := element.Render(context.Background())
	if err != nil {
		t.Fatalf("render %q: %v", typ, err)
	}
	return out
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, out)
		}
	}
}

func TestDefaultRegistry_Names(t *testing.T) {
	want := []string{
		"button", "checkbox", "colorpicker", "date", "email", "hidden", "input",
		"number", "password", "radio", "search", "select", "stepper", "switcher",
		"tel", "text", "textarea", "time", "url",
	}
	if diff := cmp.Diff(want, NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultElements_Text(t *testing.T) {
	factory := newTestFactory(t)
	out := renderElement(t, factory, "text", structure.Descriptor{
		ID:   "general-site_name",
		Name: "general-site_name",
		Attrs: map[string]any{
			"label":       "Site <name>",
			"value":       "Acme",
			"placeholder": "Your site",
			"class":       "uib-field",
			"required":    true,
		},
	})

	assertContains(t, out,
		`<label class="uib-ui-label" for="general-site_name">Site &lt;name&gt;</label>`,
		`type="text"`,
		`class="uib-ui-text uib-field"`,
		`value="Acme"`,
		`placeholder="Your site"`,
		` required>`,
	)
}

func TestDefaultElements_InputAliasSetsType(t *testing.T) {
	factory := newTestFactory(t)

	assertContains(t, renderElement(t, factory, "email", structure.Descriptor{ID: "e"}), `type="email"`)
	assertContains(t, renderElement(t, factory, "input", structure.Descriptor{ID: "i"}), `type="text"`)
}

func TestDefaultElements_SelectOptions(t *testing.T) {
	factory := newTestFactory(t)
	out := renderElement(t, factory, "select", structure.Descriptor{
		ID:   "layout",
		Name: "layout",
		Attrs: map[string]any{
			"value":   "wide",
			"options": map[string]any{"wide": "Wide", "boxed": "Boxed"},
		},
	})

	boxed := strings.Index(out, `value="boxed"`)
	wide := strings.Index(out, `value="wide"`)
	if boxed < 0 || wide < 0 || boxed > wide {
		t.Fatalf("expected options in key order, got\n%s", out)
	}
	assertContains(t, out, `<option value="wide" selected>Wide</option>`, `<option value="boxed">Boxed</option>`)
}

func TestDefaultElements_CheckboxMultipleValues(t *testing.T) {
	factory := newTestFactory(t)
	out := renderElement(t, factory, "checkbox", structure.Descriptor{
		ID:   "features",
		Name: "features",
		Attrs: map[string]any{
			"value": []any{"b"},
			"options": []any{
				map[string]any{"value": "a", "label": "Alpha"},
				map[string]any{"value": "b", "label": "Beta"},
			},
		},
	})

	assertContains(t, out,
		`<input type="checkbox" name="features[]" value="a"><span>Alpha</span>`,
		`<input type="checkbox" name="features[]" value="b" checked><span>Beta</span>`,
	)
}

func TestDefaultElements_Switcher(t *testing.T) {
	factory := newTestFactory(t)
	out := renderElement(t, factory, "switcher", structure.Descriptor{
		ID:    "maintenance",
		Name:  "maintenance",
		Attrs: map[string]any{"value": "1", "true_value": "1", "false_value": "0"},
	})

	assertContains(t, out,
		`<input type="hidden" name="maintenance" value="0">`,
		`value="1" checked`,
		`>On</span>`,
		`>Off</span>`,
	)
}

func TestDefaultElements_StepperBounds(t *testing.T) {
	factory := newTestFactory(t)
	out := renderElement(t, factory, "stepper", structure.Descriptor{
		ID:    "per_page",
		Attrs: map[string]any{"min": 1, "max": 50, "step": 5, "value": 10},
	})

	assertContains(t, out, `value="10" max="50" min="1" step="5"`)
}

func TestDefaultElements_Button(t *testing.T) {
	factory := newTestFactory(t)
	out := renderElement(t, factory, "button", structure.Descriptor{
		ID:    "save",
		Name:  "save",
		Attrs: map[string]any{"content": "Save", "button_type": "submit"},
	})

	assertContains(t, out, `<button type="submit" id="save" name="save" class="uib-ui-button">Save</button>`)
}

func TestDefaultElements_NoTemplateRenderer(t *testing.T) {
	element, err := NewFactory(nil, nil).Element("text", structure.Descriptor{})
	if err != nil {
		t.Fatalf("element: %v", err)
	}
	if _, err := element.Render(context.Background()); err == nil {
		t.Fatalf("expected error without template renderer")
	}
}

func TestNormalizeOptions(t *testing.T) {
	got := normalizeOptions([]string{"x", "y"}, selectedValues(map[string]any{"y": true, "x": false}))
	want := []map[string]any{
		{"value": "x", "label": "x", "checked": false},
		{"value": "y", "label": "y", "checked": true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}
