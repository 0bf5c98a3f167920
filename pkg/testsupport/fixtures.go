package testsupport

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uibuilder/pkg/structure"
)

// MustLoadStructure reads a YAML structure fixture. Helpers fail the test on
// error to keep render tests concise.
func MustLoadStructure(t *testing.T, path string) *structure.Structure {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read structure: %v", err)
	}
	s, err := structure.LoadYAML(data, path)
	if err != nil {
		t.Fatalf("load structure: %v", err)
	}
	return s
}

// OutlineEntry is the key/type/parent triple recorded by Outline.
type OutlineEntry struct {
	Key    string `json:"key"`
	Type   string `json:"type"`
	Parent string `json:"parent,omitempty"`
}

// Outline summarises a structure in insertion order for golden comparisons.
func Outline(s *structure.Structure) []OutlineEntry {
	out := make([]OutlineEntry, 0, s.Len())
	s.Each(func(key string, d structure.Descriptor) bool {
		out = append(out, OutlineEntry{Key: key, Type: d.Type, Parent: d.Parent})
		return true
	})
	return out
}

// AssertGoldenJSON compares got against the JSON golden at path. With
// UPDATE_GOLDENS set the golden is rewritten instead.
func AssertGoldenJSON[T any](t *testing.T, path string, got T) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") != "" {
		payload, err := json.MarshalIndent(got, "", "  ")
		if err != nil {
			t.Fatalf("marshal golden: %v", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	var want T
	if err := json.Unmarshal(data, &want); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden mismatch %s (-want +got):\n%s", path, diff)
	}
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
