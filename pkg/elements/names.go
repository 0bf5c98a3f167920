package elements

// Canonical element names registered by NewDefaultRegistry.
const (
	NameText        = "text"
	NameTextarea    = "textarea"
	NameSelect      = "select"
	NameCheckbox    = "checkbox"
	NameRadio       = "radio"
	NameSwitcher    = "switcher"
	NameStepper     = "stepper"
	NameColorpicker = "colorpicker"
	NameHidden      = "hidden"
	NameButton      = "button"
)

// inputAliases render through the text element with the alias as input type.
var inputAliases = []string{"input", "email", "url", "password", "number", "tel", "search", "date", "time"}
