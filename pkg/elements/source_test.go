package elements

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uibuilder/pkg/structure"
)

func TestSearchOptions(t *testing.T) {
	options := []Option{
		{Value: "x/a/b", Label: "X"},
		{Value: "a/b", Label: "A"},
		{Value: "c", Label: "Boxed a/b"},
		{Value: "d", Label: "D"},
	}

	tests := []struct {
		name  string
		query OptionQuery
		want  []Option
	}{
		{
			name:  "empty search keeps order",
			query: OptionQuery{},
			want:  options,
		},
		{
			name:  "prefix matches first",
			query: OptionQuery{Search: "A/B"},
			want:  []Option{options[1], options[0], options[2]},
		},
		{
			name:  "label prefix",
			query: OptionQuery{Search: "box"},
			want:  []Option{options[2]},
		},
		{
			name:  "limit",
			query: OptionQuery{Search: "a/b", Limit: 2},
			want:  []Option{options[1], options[0]},
		},
		{
			name:  "no match is empty not nil",
			query: OptionQuery{Search: "zzz"},
			want:  []Option{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchOptions(options, tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("SearchOptions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStaticOptions_CopiesInput(t *testing.T) {
	input := []Option{{Value: "a", Label: "A"}}
	source := StaticOptions(input)
	input[0].Label = "mutated"

	got, err := source.Options(context.Background(), OptionQuery{})
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if diff := cmp.Diff([]Option{{Value: "a", Label: "A"}}, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func listOptions(buf *bytes.Buffer, d structure.Descriptor, _ ElementData) error {
	value, _ := d.Attr("options")
	for _, option := range normalizeOptions(value, nil) {
		fmt.Fprintf(buf, "[%s]", option["label"])
	}
	return nil
}

func TestFactory_FillsOptionsFromSource(t *testing.T) {
	registry := New()
	registry.MustRegister("color", Definition{
		Render:  listOptions,
		Options: StaticOptions([]Option{{Value: "r", Label: "Red"}, {Value: "g", Label: "Green"}}),
	})

	render := func(d structure.Descriptor) string {
		t.Helper()
		el, err := NewFactory(nil, registry).Element("color", d)
		if err != nil {
			t.Fatalf("Element: %v", err)
		}
		out, err := el.Render(context.Background())
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return out
	}

	if got := render(structure.Descriptor{ID: "c"}); got != "[Red][Green]" {
		t.Fatalf("expected source options, got %q", got)
	}
	own := structure.Descriptor{ID: "c", Attrs: map[string]any{"options": []string{"Blue"}}}
	if got := render(own); got != "[Blue]" {
		t.Fatalf("descriptor options should win, got %q", got)
	}

	source, ok := registry.OptionSource("COLOR")
	if !ok || source == nil {
		t.Fatal("expected option source lookup by normalised name")
	}
	if _, ok := registry.OptionSource("missing"); ok {
		t.Fatal("unexpected source for unknown element")
	}
}

func TestFactory_WrapsOptionSourceErrors(t *testing.T) {
	boom := errors.New("boom")
	registry := New()
	registry.MustRegister("remote", Definition{
		Render: listOptions,
		Options: OptionSourceFunc(func(context.Context, OptionQuery) ([]Option, error) {
			return nil, boom
		}),
	})

	el, err := NewFactory(nil, registry).Element("remote", structure.Descriptor{ID: "r"})
	if err != nil {
		t.Fatalf("Element: %v", err)
	}
	if _, err := el.Render(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}
