package gotemplate

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var filtersOnce sync.Once

// registerFilters installs the filters the bundled templates use. pongo2
// filters are process-wide.
func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("attrs") {
			_ = pongo2.RegisterFilter("attrs", filterAttrs)
		}
	})
}

// filterAttrs renders a mapping as escaped HTML attributes in key order.
// Boolean true renders the bare attribute, false and nil values are skipped.
func filterAttrs(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	attrs, ok := in.Interface().(map[string]any)
	if !ok || len(attrs) == 0 {
		return pongo2.AsSafeValue(""), nil
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		if strings.TrimSpace(key) != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		name := html.EscapeString(strings.TrimSpace(key))
		switch value := attrs[key].(type) {
		case nil:
		case bool:
			if value {
				sb.WriteString(" " + name)
			}
		default:
			fmt.Fprintf(&sb, ` %s="%s"`, name, html.EscapeString(fmt.Sprint(value)))
		}
	}
	return pongo2.AsSafeValue(sb.String()), nil
}
