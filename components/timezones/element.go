package timezones

import (
	"fmt"

	"github.com/goliatone/go-uibuilder/pkg/elements"
)

// ElementName is the control type registered by Register.
const ElementName = "timezone"

// Register adds the timezone element to registry. It reuses the registry's
// select definition and attaches a Source, so descriptors without options
// list every zone and the zones can be searched remotely.
func Register(registry *elements.Registry, opts ...SourceOption) error {
	if registry == nil {
		return fmt.Errorf("timezones: missing registry")
	}
	selectDef, ok := registry.Definition(elements.NameSelect)
	if !ok {
		return fmt.Errorf("timezones: registry has no %q element", elements.NameSelect)
	}

	selectDef.Options = NewSource(opts...)
	return registry.Register(ElementName, selectDef)
}
