package render

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeTemplatePrefix namespaces view overrides inside theme manifests, e.g.
// "uibuilder.section" or "uibuilder.tab-children-title".
const ThemeTemplatePrefix = "uibuilder."

// resolveTheme selects the theme and flattens manifest and variant data into
// a renderer config. Variant tokens and templates override the manifest.
func resolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("render: theme selector returned no selection for %q", name)
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   map[string]string{},
		Partials: map[string]string{},
	}

	var prefix string
	files := map[string]string{}
	if manifest := selection.Manifest; manifest != nil {
		if cfg.Theme == "" {
			cfg.Theme = manifest.Name
		}
		maps.Copy(cfg.Tokens, manifest.Tokens)
		maps.Copy(cfg.Partials, manifest.Templates)
		maps.Copy(files, manifest.Assets.Files)
		prefix = manifest.Assets.Prefix

		if v, ok := manifest.Variants[selection.Variant]; ok {
			maps.Copy(cfg.Tokens, v.Tokens)
			maps.Copy(cfg.Partials, v.Templates)
			maps.Copy(files, v.Assets.Files)
			if v.Assets.Prefix != "" {
				prefix = v.Assets.Prefix
			}
		}
	}

	cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return cfg, nil
}

// themeViews extracts view overrides from the theme partials.
func themeViews(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return nil
	}
	out := make(map[string]string)
	for key, template := range cfg.Partials {
		view, ok := strings.CutPrefix(key, ThemeTemplatePrefix)
		if !ok || view == "" || strings.TrimSpace(template) == "" {
			continue
		}
		out[view] = template
	}
	return out
}

// themeGlobals is the value exposed to templates as "theme".
func themeGlobals(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return nil
	}
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"tokens":         maps.Clone(cfg.Tokens),
		"css_vars":       maps.Clone(cfg.CSSVars),
		"css_vars_style": cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(vars[key])
		builder.WriteString(";")
	}
	return builder.String()
}

// StaticTheme adapts a single manifest to theme.ThemeSelector. Any requested
// name resolves to the manifest; an unknown variant falls back to the base
// manifest.
type StaticTheme struct {
	Manifest *theme.Manifest
}

var _ theme.ThemeSelector = StaticTheme{}

// Select implements theme.ThemeSelector.
func (s StaticTheme) Select(_ string, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s.Manifest == nil {
		return nil, fmt.Errorf("render: static theme has no manifest")
	}
	if _, ok := s.Manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{
		Theme:    s.Manifest.Name,
		Variant:  variant,
		Manifest: s.Manifest,
	}, nil
}
