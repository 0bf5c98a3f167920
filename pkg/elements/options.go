package elements

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Option is a normalised choice rendered by select, checkbox and radio.
type Option struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked,omitempty"`
}

// normalizeOptions accepts the shapes callers and YAML documents produce:
// mappings of value to label (rendered in key order), sequences of scalars,
// and sequences of {value, label} mappings (rendered in sequence order).
// Structure documents reach here as sequences, keeping the author's order.
func normalizeOptions(raw any, selected map[string]struct{}) []map[string]any {
	var options []Option
	switch v := raw.(type) {
	case map[string]any:
		for _, key := range sortedKeys(v) {
			options = append(options, Option{Value: key, Label: stringify(v[key])})
		}
	case map[string]string:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			options = append(options, Option{Value: key, Label: v[key]})
		}
	case []string:
		for _, item := range v {
			options = append(options, Option{Value: item, Label: item})
		}
	case []Option:
		options = append(options, v...)
	case []any:
		for _, item := range v {
			if entry, ok := item.(map[string]any); ok {
				value := stringify(entry["value"])
				label := stringify(entry["label"])
				if label == "" {
					label = value
				}
				options = append(options, Option{Value: value, Label: label})
				continue
			}
			text := stringify(item)
			options = append(options, Option{Value: text, Label: text})
		}
	}

	out := make([]map[string]any, 0, len(options))
	for _, option := range options {
		_, checked := selected[option.Value]
		out = append(out, map[string]any{
			"value":   option.Value,
			"label":   option.Label,
			"checked": checked || option.Checked,
		})
	}
	return out
}

// selectedValues collects the current value(s) of a choice control. A
// mapping value marks the keys whose value is truthy.
func selectedValues(value any) map[string]struct{} {
	out := make(map[string]struct{})
	switch v := value.(type) {
	case nil:
	case []any:
		for _, item := range v {
			out[stringify(item)] = struct{}{}
		}
	case []string:
		for _, item := range v {
			out[item] = struct{}{}
		}
	case map[string]any:
		for key, item := range v {
			if truthy(item) {
				out[key] = struct{}{}
			}
		}
	default:
		if text := stringify(v); text != "" {
			out[text] = struct{}{}
		}
	}
	return out
}

func sortedKeys(in map[string]any) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false", "off", "no":
			return false
		default:
			return true
		}
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
