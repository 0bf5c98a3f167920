package structure

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document group names. Each top-level key of a structure document is
// registered through the matching call, in document order.
const (
	GroupSections   = "sections"
	GroupComponents = "components"
	GroupSettings   = "settings"
	GroupControls   = "controls"
	GroupHTML       = "html"
	// GroupElements holds entries of any type, each registered through the
	// call matching its own type.
	GroupElements = "elements"
)

type descriptorFile struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"`
	Parent      string         `yaml:"parent"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Scroll      bool           `yaml:"scroll"`
	Master      any            `yaml:"master"`
	View        string         `yaml:"view"`
	HTML        string         `yaml:"html"`
	TitleInView string         `yaml:"title_in_view"`
	Attrs       map[string]any `yaml:",inline"`
}

func (f descriptorFile) descriptor() Descriptor {
	d := Descriptor{
		ID:          f.ID,
		Name:        f.Name,
		Type:        f.Type,
		Parent:      f.Parent,
		Title:       f.Title,
		Description: f.Description,
		Scroll:      f.Scroll,
		Master:      masterClass(f.Master),
		View:        f.View,
		HTML:        f.HTML,
		TitleInView: f.TitleInView,
	}
	if len(f.Attrs) > 0 {
		d.Attrs = f.Attrs
	}
	return d
}

// LoadYAML parses a structure document (YAML or JSON) into a Structure.
func LoadYAML(data []byte, source string) (*Structure, error) {
	registry := NewRegistry()
	if err := LoadInto(registry, data, source); err != nil {
		return nil, err
	}
	return registry.Structure(), nil
}

// LoadFS reads and parses a structure document from fsys.
func LoadFS(fsys fs.FS, path string) (*Structure, error) {
	if fsys == nil {
		return nil, fmt.Errorf("structure: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("structure: read %s: %w", path, err)
	}
	return LoadYAML(data, path)
}

// LoadInto registers the groups of a structure document into registry.
func LoadInto(registry *Registry, data []byte, source string) error {
	if registry == nil {
		return fmt.Errorf("structure: registry is nil")
	}
	if strings.TrimSpace(string(data)) == "" {
		return fmt.Errorf("structure: file %s is empty", source)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("structure: parse %s: %w", source, err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return fmt.Errorf("structure: file %s must contain a mapping of groups", source)
	}

	for idx := 0; idx+1 < len(doc.Content); idx += 2 {
		group := strings.TrimSpace(doc.Content[idx].Value)
		register, ok := registerFunc(registry, group)
		if !ok {
			return fmt.Errorf("structure: file %s: unknown group %q", source, group)
		}
		inputs, err := decodeGroup(doc.Content[idx+1])
		if err != nil {
			return fmt.Errorf("structure: file %s: group %q: %w", source, group, err)
		}
		for _, in := range inputs {
			register(in)
		}
	}
	return nil
}

func registerFunc(registry *Registry, group string) (func(Input), bool) {
	switch strings.ToLower(group) {
	case GroupSections, "section":
		return registry.RegisterSection, true
	case GroupComponents, "component":
		return registry.RegisterComponent, true
	case GroupSettings:
		return registry.RegisterSettings, true
	case GroupControls, "control":
		return registry.RegisterControl, true
	case GroupHTML:
		return registry.RegisterHTML, true
	case GroupElements:
		return func(in Input) { registerByKind(registry, in) }, true
	default:
		return nil, false
	}
}

func registerByKind(registry *Registry, in Input) {
	for _, entry := range in.registryEntries(TypeControl) {
		var register func(Input)
		switch kind := entry.Descriptor.Kind(); {
		case kind == KindSection:
			register = registry.RegisterSection
		case kind.IsComponent():
			register = registry.RegisterComponent
		case kind == KindSettings:
			register = registry.RegisterSettings
		case kind == KindHTML:
			register = registry.RegisterHTML
		default:
			register = registry.RegisterControl
		}
		register(Set{entry})
	}
}

// decodeGroup mirrors the registration call semantics: a mapping whose first
// value is itself a mapping is the keyed form, any other mapping is a single
// descriptor. Sequences hold single descriptors.
func decodeGroup(node *yaml.Node) ([]Input, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		inputs := make([]Input, 0, len(node.Content))
		for _, item := range node.Content {
			d, err := decodeDescriptor(item)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, d)
		}
		return inputs, nil
	case yaml.MappingNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		if node.Content[1].Kind != yaml.MappingNode {
			d, err := decodeDescriptor(node)
			if err != nil {
				return nil, err
			}
			return []Input{d}, nil
		}
		set := make(Set, 0, len(node.Content)/2)
		for idx := 0; idx+1 < len(node.Content); idx += 2 {
			key := node.Content[idx].Value
			d, err := decodeDescriptor(node.Content[idx+1])
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", key, err)
			}
			set = append(set, Entry{Key: key, Descriptor: d})
		}
		return []Input{set}, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected mapping or sequence, got %s", nodeKindName(node.Kind))
}

func decodeDescriptor(node *yaml.Node) (Descriptor, error) {
	if node.Kind != yaml.MappingNode {
		return Descriptor{}, fmt.Errorf("descriptor must be a mapping, got %s", nodeKindName(node.Kind))
	}
	var file descriptorFile
	if err := node.Decode(&file); err != nil {
		return Descriptor{}, err
	}
	d := file.descriptor()
	if options, ok := orderedOptions(node); ok {
		d.Attrs["options"] = options
	}
	return d, nil
}

// orderedOptions rewrites an options mapping of value to label as a sequence
// of {value, label} entries so document order survives decoding.
func orderedOptions(node *yaml.Node) ([]any, bool) {
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		if node.Content[idx].Value != "options" {
			continue
		}
		value := node.Content[idx+1]
		if value.Kind != yaml.MappingNode {
			return nil, false
		}
		out := make([]any, 0, len(value.Content)/2)
		for j := 0; j+1 < len(value.Content); j += 2 {
			label := value.Content[j+1]
			if label.Kind != yaml.ScalarNode {
				return nil, false
			}
			out = append(out, map[string]any{
				"value": value.Content[j].Value,
				"label": label.Value,
			})
		}
		return out, true
	}
	return nil, false
}

// masterClass keeps string values verbatim; a boolean true concatenates as
// "1", matching how the class string has always been assembled.
func masterClass(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "1"
		}
		return ""
	default:
		return toString(v)
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
