package structure

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const sampleDocument = `
sections:
  general:
    title: General
    scroll: true
components:
  tabs:
    type: component-tab-vertical
    parent: general
settings:
  identity:
    parent: tabs
    title: Identity
controls:
  - id: site_name
    type: text
    parent: identity
    label: Site name
    master: true
  - id: layout
    type: select
    parent: identity
    options:
      wide: Wide
      boxed: Boxed
html:
  id: note
  html: "<b>hi</b>"
`

func TestLoadYAML_RegistersGroupsInDocumentOrder(t *testing.T) {
	s, err := LoadYAML([]byte(sampleDocument), "sample.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"general", "tabs", "identity", "site_name", "layout", "note"}, s.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	general, _ := s.Get("general")
	if general.Type != TypeSection || !general.Scroll || general.Title != "General" {
		t.Fatalf("unexpected section: %+v", general)
	}
	tabs, _ := s.Get("tabs")
	if tabs.Type != string(KindTabVertical) {
		t.Fatalf("component type should be preserved, got %q", tabs.Type)
	}
	siteName, _ := s.Get("site_name")
	if siteName.Type != "text" || siteName.StringAttr("label") != "Site name" {
		t.Fatalf("unexpected control: %+v", siteName)
	}
	if siteName.Master != "1" {
		t.Fatalf("boolean master should concatenate as 1, got %q", siteName.Master)
	}
	layout, _ := s.Get("layout")
	options, ok := layout.Attr("options")
	if !ok {
		t.Fatalf("options attr missing: %+v", layout)
	}
	wantOptions := []any{
		map[string]any{"value": "wide", "label": "Wide"},
		map[string]any{"value": "boxed", "label": "Boxed"},
	}
	if diff := cmp.Diff(wantOptions, options); diff != "" {
		t.Fatalf("options should keep document order (-want +got):\n%s", diff)
	}
	note, _ := s.Get("note")
	if note.HTML != "<b>hi</b>" {
		t.Fatalf("unexpected html: %+v", note)
	}
}

func TestLoadYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":         "   ",
		"not a mapping": "- a\n- b\n",
		"unknown group": "widgets:\n  a: {}\n",
		"scalar group":  "sections: nope\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadYAML([]byte(doc), name); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"ui/page.yaml": &fstest.MapFile{Data: []byte(sampleDocument)},
	}
	s, err := LoadFS(fsys, "ui/page.yaml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if s.Len() != 6 {
		t.Fatalf("expected 6 entries, got %d", s.Len())
	}

	_, err = LoadFS(fsys, "ui/missing.yaml")
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected read error naming the file, got %v", err)
	}
}

func TestLoadYAML_ElementsGroupRegistersByType(t *testing.T) {
	doc := `
elements:
  general:
    type: section
  tabs:
    type: component-toggle
    parent: general
  name:
    type: text
    parent: tabs
  note:
    type: html
    html: "<i>x</i>"
`
	s, err := LoadYAML([]byte(doc), "elements.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"general", "tabs", "name", "note"}, s.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	for key, want := range map[string]string{"general": TypeSection, "tabs": "component-toggle", "name": "text", "note": TypeHTML} {
		if d, _ := s.Get(key); d.Type != want {
			t.Fatalf("%s: want type %q, got %q", key, want, d.Type)
		}
	}
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	original, err := LoadYAML([]byte(sampleDocument), "sample.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	data, err := EncodeYAML(original)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := LoadYAML(data, "encoded.yaml")
	if err != nil {
		t.Fatalf("reload: %v\n%s", err, data)
	}

	if diff := cmp.Diff(original.Entries(), decoded.Entries()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s\n%s", diff, data)
	}
}
