package elements

import (
	"bytes"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/goliatone/go-uibuilder/pkg/structure"
)

const (
	templatePrefix = "elements/"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// controls rendered from the embedded element templates.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameText, Definition{
		Render: templateElementRenderer(templatePrefix+"text", prepareText),
		Config: map[string]any{"input_type": "text"},
	})
	for _, alias := range inputAliases {
		inputType := alias
		if alias == "input" {
			inputType = "text"
		}
		registry.MustRegister(alias, Definition{
			Render: templateElementRenderer(templatePrefix+"text", prepareText),
			Config: map[string]any{"input_type": inputType},
		})
	}
	registry.MustRegister(NameTextarea, Definition{
		Render: templateElementRenderer(templatePrefix+"textarea", prepareTextarea),
	})
	registry.MustRegister(NameSelect, Definition{
		Render: templateElementRenderer(templatePrefix+"select", prepareChoices),
	})
	registry.MustRegister(NameCheckbox, Definition{
		Render: templateElementRenderer(templatePrefix+"checkbox", prepareChoices),
	})
	registry.MustRegister(NameRadio, Definition{
		Render: templateElementRenderer(templatePrefix+"radio", prepareChoices),
	})
	registry.MustRegister(NameSwitcher, Definition{
		Render: templateElementRenderer(templatePrefix+"switcher", prepareSwitcher),
	})
	registry.MustRegister(NameStepper, Definition{
		Render: templateElementRenderer(templatePrefix+"stepper", prepareStepper),
	})
	registry.MustRegister(NameColorpicker, Definition{
		Render: templateElementRenderer(templatePrefix+"colorpicker", prepareColorpicker),
	})
	registry.MustRegister(NameHidden, Definition{
		Render: templateElementRenderer(templatePrefix+"hidden", prepareText),
	})
	registry.MustRegister(NameButton, Definition{
		Render: templateElementRenderer(templatePrefix+"button", prepareButton),
	})

	return registry
}

type prepareFunc func(d structure.Descriptor, config map[string]any)

func templateElementRenderer(templateName string, prepare prepareFunc) RenderFunc {
	return func(buf *bytes.Buffer, d structure.Descriptor, data ElementData) error {
		if data.Template == nil {
			return fmt.Errorf("elements: template renderer not configured for %q", templateName)
		}

		config := maps.Clone(data.Config)
		if config == nil {
			config = make(map[string]any)
		}
		config["attributes"] = attributes(d)
		if prepare != nil {
			prepare(d, config)
		}

		payload := map[string]any{
			"field":  d.Args(),
			"config": config,
		}
		rendered, err := data.Template.RenderTemplate(templateName, payload)
		if err != nil {
			return fmt.Errorf("elements: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func prepareText(d structure.Descriptor, config map[string]any) {
	config["value"] = d.StringAttr("value")
	if inputType := d.StringAttr("input_type"); inputType != "" {
		config["input_type"] = inputType
	}
}

func prepareTextarea(d structure.Descriptor, config map[string]any) {
	config["value"] = d.StringAttr("value")
	rows := d.StringAttr("rows")
	if _, err := strconv.Atoi(rows); err != nil {
		rows = "5"
	}
	config["rows"] = rows
}

func prepareChoices(d structure.Descriptor, config map[string]any) {
	value, _ := d.Attr("value")
	options, _ := d.Attr("options")
	config["options"] = normalizeOptions(options, selectedValues(value))
	config["multiple"] = truthy(d.Attrs["multiple"])
}

func prepareSwitcher(d structure.Descriptor, config map[string]any) {
	trueValue := valueOr(d.StringAttr("true_value"), "true")
	config["true_value"] = trueValue
	config["false_value"] = valueOr(d.StringAttr("false_value"), "false")
	config["true_label"] = valueOr(d.StringAttr("true_label"), "On")
	config["false_label"] = valueOr(d.StringAttr("false_label"), "Off")

	value, _ := d.Attr("value")
	config["checked"] = truthy(value) || stringify(value) == trueValue
}

func prepareStepper(d structure.Descriptor, config map[string]any) {
	config["value"] = d.StringAttr("value")
	attrs, _ := config["attributes"].(map[string]any)
	for _, key := range []string{"min", "max", "step"} {
		if v := d.StringAttr(key); v != "" {
			attrs[key] = v
		}
	}
}

func prepareColorpicker(d structure.Descriptor, config map[string]any) {
	config["value"] = d.StringAttr("value")
	config["alpha"] = truthy(d.Attrs["alpha"])
}

func prepareButton(d structure.Descriptor, config map[string]any) {
	config["button_type"] = valueOr(d.StringAttr("button_type"), "button")
	content := d.StringAttr("content")
	if content == "" {
		content = d.StringAttr("label")
	}
	config["content"] = valueOr(content, d.Name)
}

// attributes copies the caller supplied "attributes" mapping and adds the
// boolean constraints every control honours.
func attributes(d structure.Descriptor) map[string]any {
	out := make(map[string]any)
	switch raw := d.Attrs["attributes"].(type) {
	case map[string]any:
		maps.Copy(out, raw)
	case map[string]string:
		for key, value := range raw {
			out[key] = value
		}
	}
	for _, flag := range []string{"required", "disabled", "readonly"} {
		if truthy(d.Attrs[flag]) {
			out[flag] = true
		}
	}
	return out
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
