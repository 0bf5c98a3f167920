package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-uibuilder/pkg/structure"
)

// Schema extensions understood by the importer.
const (
	ExtensionControl = "x-uibuilder-control"
	ExtensionOrder   = "x-uibuilder-order"
	ExtensionHidden  = "x-uibuilder-hidden"
)

// ErrSchemaNotFound is returned when the requested component schema is absent.
var ErrSchemaNotFound = errors.New("openapi: schema not found")

// Option customises an import.
type Option func(*config)

type config struct {
	sectionID    string
	sectionTitle string
	rootKey      string
}

// WithSection wraps the imported settings group in a section.
func WithSection(id, title string) Option {
	return func(c *config) {
		c.sectionID = strings.TrimSpace(id)
		c.sectionTitle = title
	}
}

// WithRootKey sets the key of the top-level settings group. Defaults to the
// schema name.
func WithRootKey(key string) Option {
	return func(c *config) {
		c.rootKey = strings.TrimSpace(key)
	}
}

// Load parses an OpenAPI document.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

// SchemaNames lists the component schemas of a document in name order.
func SchemaNames(doc *openapi3.T) []string {
	if doc == nil || doc.Components == nil {
		return nil
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Import converts the named component schema of an OpenAPI document into a
// structure ready for rendering.
func Import(ctx context.Context, data []byte, schemaName string, opts ...Option) (*structure.Structure, error) {
	doc, err := Load(ctx, data)
	if err != nil {
		return nil, err
	}
	return ImportDocument(doc, schemaName, opts...)
}

// ImportFS reads the document at path from fsys and imports schemaName.
func ImportFS(ctx context.Context, fsys fs.FS, path, schemaName string, opts ...Option) (*structure.Structure, error) {
	if fsys == nil {
		return nil, errors.New("openapi: filesystem is not configured")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return Import(ctx, data, schemaName, opts...)
}

// ImportDocument converts a component schema of a parsed document.
func ImportDocument(doc *openapi3.T, schemaName string, opts ...Option) (*structure.Structure, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if doc == nil || doc.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}

	rootKey := cfg.rootKey
	if rootKey == "" {
		rootKey = schemaName
	}

	out := structure.New()
	parent := ""
	if cfg.sectionID != "" {
		out.Set(cfg.sectionID, structure.Descriptor{
			ID:    cfg.sectionID,
			Type:  structure.TypeSection,
			Title: cfg.sectionTitle,
		})
		parent = cfg.sectionID
	}

	root := ref.Value
	out.Set(rootKey, structure.Descriptor{
		Type:        structure.TypeSettings,
		Parent:      parent,
		Title:       valueOr(root.Title, humanize(schemaName)),
		Description: root.Description,
	})

	imp := importer{out: out}
	imp.properties(rootKey, nil, root)
	return out, nil
}

type importer struct {
	out *structure.Structure
}

func (imp importer) properties(parentKey string, path []string, schema *openapi3.Schema) {
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	for _, name := range orderedProperties(schema.Properties) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if truthy(prop.Extensions[ExtensionHidden]) {
			continue
		}

		propPath := append(append([]string(nil), path...), name)
		key := parentKey + "_" + name

		if isType(prop, openapi3.TypeObject) && len(prop.Properties) > 0 {
			imp.out.Set(key, structure.Descriptor{
				Type:        structure.TypeSettings,
				Parent:      parentKey,
				Name:        strings.Join(propPath, "."),
				Title:       valueOr(prop.Title, humanize(name)),
				Description: prop.Description,
			})
			imp.properties(key, propPath, prop)
			continue
		}

		_, isRequired := required[name]
		imp.out.Set(key, control(parentKey, propPath, prop, isRequired))
	}
}

func control(parentKey string, path []string, prop *openapi3.Schema, required bool) structure.Descriptor {
	name := path[len(path)-1]
	attrs := map[string]any{
		"label": valueOr(prop.Title, humanize(name)),
	}
	if prop.Default != nil {
		attrs["value"] = prop.Default
	}
	if required {
		attrs["required"] = true
	}
	if prop.ReadOnly {
		attrs["readonly"] = true
	}

	typ := controlType(prop)
	switch typ {
	case "select", "radio":
		attrs["options"] = append([]any(nil), prop.Enum...)
	case "checkbox":
		if prop.Items != nil && prop.Items.Value != nil {
			attrs["options"] = append([]any(nil), prop.Items.Value.Enum...)
		}
	case "stepper":
		if prop.Min != nil {
			attrs["min"] = formatNumber(*prop.Min)
		}
		if prop.Max != nil {
			attrs["max"] = formatNumber(*prop.Max)
		}
		if prop.MultipleOf != nil {
			attrs["step"] = formatNumber(*prop.MultipleOf)
		}
	}
	if prop.MaxLength != nil && (typ == "text" || typ == "textarea") {
		attrs["attributes"] = map[string]any{"maxlength": fmt.Sprint(*prop.MaxLength)}
	}

	return structure.Descriptor{
		Type:        typ,
		Parent:      parentKey,
		Name:        strings.Join(path, "."),
		Description: prop.Description,
		Attrs:       attrs,
	}
}

// controlType maps a property schema onto a built-in element type.
func controlType(prop *openapi3.Schema) string {
	if override, ok := prop.Extensions[ExtensionControl].(string); ok && strings.TrimSpace(override) != "" {
		return strings.TrimSpace(override)
	}

	switch {
	case len(prop.Enum) > 0:
		return "select"
	case isType(prop, openapi3.TypeBoolean):
		return "switcher"
	case isType(prop, openapi3.TypeInteger), isType(prop, openapi3.TypeNumber):
		return "stepper"
	case isType(prop, openapi3.TypeArray):
		if prop.Items != nil && prop.Items.Value != nil && len(prop.Items.Value.Enum) > 0 {
			return "checkbox"
		}
		return "textarea"
	}

	switch strings.ToLower(prop.Format) {
	case "email":
		return "email"
	case "uri", "url":
		return "url"
	case "password":
		return "password"
	case "date":
		return "date"
	case "time":
		return "time"
	case "color":
		return "colorpicker"
	case "textarea", "html", "markdown":
		return "textarea"
	}
	if prop.MaxLength != nil && *prop.MaxLength > 255 {
		return "textarea"
	}
	return "text"
}

func isType(schema *openapi3.Schema, typ string) bool {
	return schema.Type != nil && schema.Type.Is(typ)
}

// orderedProperties sorts by x-uibuilder-order (unordered last), then name.
func orderedProperties(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	order := func(name string) float64 {
		ref := props[name]
		if ref == nil || ref.Value == nil {
			return math.MaxFloat64
		}
		switch v := ref.Value.Extensions[ExtensionOrder].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		default:
			return math.MaxFloat64
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := order(names[i]), order(names[j])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}

func humanize(name string) string {
	name = strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	var builder strings.Builder
	for idx, r := range name {
		if idx > 0 && r >= 'A' && r <= 'Z' && name[idx-1] != ' ' {
			builder.WriteByte(' ')
		}
		builder.WriteRune(r)
	}
	out := strings.ToLower(builder.String())
	return strings.ToUpper(out[:1]) + out[1:]
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprint(v)
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func truthy(value any) bool {
	b, ok := value.(bool)
	return ok && b
}
