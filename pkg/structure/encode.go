package structure

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes s as a structure document with a single "elements"
// group, so insertion order survives a LoadYAML round trip.
func EncodeYAML(s *Structure) ([]byte, error) {
	entries := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range s.Entries() {
		node, err := encodeDescriptor(entry.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("structure: encode %q: %w", entry.Key, err)
		}
		entries.Content = append(entries.Content, scalar(entry.Key), node)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	doc.Content = append(doc.Content, scalar(GroupElements), entries)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("structure: encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("structure: encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeDescriptor(d Descriptor) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key, value string) {
		if value != "" {
			node.Content = append(node.Content, scalar(key), scalar(value))
		}
	}

	add(ArgID, d.ID)
	add(ArgName, d.Name)
	add(ArgType, d.Type)
	add(ArgParent, d.Parent)
	add(ArgTitle, d.Title)
	add(ArgDescription, d.Description)
	if d.Scroll {
		node.Content = append(node.Content, scalar(ArgScroll), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(true)})
	}
	add(ArgMaster, d.Master)
	add(ArgView, d.View)
	add(ArgHTML, d.HTML)
	add(ArgTitleInView, d.TitleInView)

	keys := make([]string, 0, len(d.Attrs))
	for key := range d.Attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		var value yaml.Node
		if err := value.Encode(d.Attrs[key]); err != nil {
			return nil, fmt.Errorf("attr %q: %w", key, err)
		}
		node.Content = append(node.Content, scalar(key), &value)
	}
	return node, nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
