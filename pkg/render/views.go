package render

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-uibuilder/pkg/structure"
)

// Helper views rendered for children of tab, toggle and settings wrappers.
const (
	ViewControl       = "control"
	ViewTabTitle      = "tab-children-title"
	ViewToggleTitle   = "toggle-children-title"
	ViewSettingsTitle = "settings-children-title"
)

// DefaultTemplatePrefix is the directory the bundled view templates live in.
const DefaultTemplatePrefix = "views/"

// Views maps view names (structural kinds plus the helper views) to template
// names understood by the template renderer.
type Views struct {
	mu        sync.RWMutex
	templates map[string]string
}

// NewViews creates an empty view registry.
func NewViews() *Views {
	return &Views{
		templates: make(map[string]string),
	}
}

// DefaultViews registers every structural kind and helper view against the
// bundled templates ("views/<name>").
func DefaultViews() *Views {
	views := NewViews()
	for _, kind := range structure.Kinds() {
		if kind == structure.KindField {
			continue
		}
		views.MustRegister(kind.String(), DefaultTemplatePrefix+kind.String())
	}
	for _, name := range []string{ViewControl, ViewTabTitle, ViewToggleTitle, ViewSettingsTitle} {
		views.MustRegister(name, DefaultTemplatePrefix+name)
	}
	return views
}

// Register maps a view name to a template. Existing entries are replaced.
func (v *Views) Register(name, template string) error {
	name = strings.TrimSpace(name)
	template = strings.TrimSpace(template)
	if name == "" {
		return fmt.Errorf("render: view name is required")
	}
	if template == "" {
		return fmt.Errorf("render: template for view %q is required", name)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.templates[name] = template
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (v *Views) MustRegister(name, template string) {
	if err := v.Register(name, template); err != nil {
		panic(err)
	}
}

// Remove drops a view.
func (v *Views) Remove(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.templates, strings.TrimSpace(name))
}

// Template returns the template registered for the view.
func (v *Views) Template(name string) (string, bool) {
	if v == nil {
		return "", false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	template, ok := v.templates[strings.TrimSpace(name)]
	return template, ok
}

// Names returns a sorted list of view names.
func (v *Views) Names() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	names := make([]string, 0, len(v.templates))
	for name := range v.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy.
func (v *Views) Clone() *Views {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return &Views{templates: maps.Clone(v.templates)}
}
