package structure

// Kind identifies the structural category a descriptor renders as. The set is
// closed; any type outside it renders as KindField through the element
// factory.
type Kind string

const (
	KindSection       Kind = "section"
	KindTabVertical   Kind = "component-tab-vertical"
	KindTabHorizontal Kind = "component-tab-horizontal"
	KindToggle        Kind = "component-toggle"
	KindAccordion     Kind = "component-accordion"
	KindRepeater      Kind = "component-repeater"
	KindSettings      Kind = "settings"
	KindControl       Kind = "control"
	KindHTML          Kind = "html"
	KindField         Kind = "field"
)

// Registration group types stamped onto keyed registrations.
const (
	TypeSection   = string(KindSection)
	TypeComponent = "component"
	TypeSettings  = string(KindSettings)
	TypeControl   = string(KindControl)
	TypeHTML      = string(KindHTML)
)

var structuralKinds = map[Kind]struct{}{
	KindSection:       {},
	KindTabVertical:   {},
	KindTabHorizontal: {},
	KindToggle:        {},
	KindAccordion:     {},
	KindRepeater:      {},
	KindSettings:      {},
	KindControl:       {},
	KindHTML:          {},
}

// Kinds returns the structural kinds in a stable order. KindField is not
// included.
func Kinds() []Kind {
	return []Kind{
		KindSection,
		KindTabVertical,
		KindTabHorizontal,
		KindToggle,
		KindAccordion,
		KindRepeater,
		KindSettings,
		KindControl,
		KindHTML,
	}
}

// ResolveKind maps a descriptor type onto its structural kind, falling back
// to KindField for leaf control types.
func ResolveKind(typ string) Kind {
	if _, ok := structuralKinds[Kind(typ)]; ok {
		return Kind(typ)
	}
	return KindField
}

// IsComponent reports whether the kind is one of the component-* wrappers.
func (k Kind) IsComponent() bool {
	switch k {
	case KindTabVertical, KindTabHorizontal, KindToggle, KindAccordion, KindRepeater:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}
