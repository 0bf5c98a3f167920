package structure

import (
	"strings"
	"sync"
)

// Input is accepted by the registration calls. It is implemented by
// Descriptor (a single element stored under its own ID) and Set (many
// elements keyed by identifier).
type Input interface {
	registryEntries(typ string) []Entry
}

// Set is the keyed registration form. Each entry is stamped with the
// registration type, except for controls whose caller type is preserved.
type Set []Entry

func (s Set) registryEntries(typ string) []Entry {
	out := make([]Entry, 0, len(s))
	for _, entry := range s {
		d := entry.Descriptor
		switch {
		case typ == TypeControl:
		case typ == TypeComponent && ResolveKind(d.Type).IsComponent():
		default:
			d.Type = typ
		}
		out = append(out, Entry{Key: entry.Key, Descriptor: d})
	}
	return out
}

func (d Descriptor) registryEntries(string) []Entry {
	return []Entry{{Key: d.ID, Descriptor: d}}
}

// Registry accumulates descriptors for one interface. Registration never
// fails: malformed descriptors are tolerated and defaulted when the tree is
// built.
type Registry struct {
	mu        sync.RWMutex
	structure *Structure
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{structure: &Structure{}}
}

// RegisterSection registers section elements.
func (r *Registry) RegisterSection(in Input) {
	r.add(in, TypeSection)
}

// RegisterComponent registers component elements (tabs, toggles,
// accordions, repeaters).
func (r *Registry) RegisterComponent(in Input) {
	r.add(in, TypeComponent)
}

// RegisterSettings registers settings rows.
func (r *Registry) RegisterSettings(in Input) {
	r.add(in, TypeSettings)
}

// RegisterControl registers leaf controls. The caller supplied type selects
// the element rendered by the factory.
func (r *Registry) RegisterControl(in Input) {
	r.add(in, TypeControl)
}

// RegisterHTML registers raw markup elements.
func (r *Registry) RegisterHTML(in Input) {
	r.add(in, TypeHTML)
}

func (r *Registry) add(in Input, typ string) {
	if r == nil || in == nil {
		return
	}
	entries := in.registryEntries(strings.TrimSpace(typ))

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.structure == nil {
		r.structure = &Structure{}
	}
	for _, entry := range entries {
		r.structure.Set(entry.Key, entry.Descriptor.Clone())
	}
}

// Structure returns a snapshot of the registered elements.
func (r *Registry) Structure() *Structure {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.structure.Clone()
}

// Len returns the number of registered elements.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.structure.Len()
}

// Reset drops every registered element.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.structure = &Structure{}
}

// Validate reports parent cycles. Rendering tolerates them by skipping the
// cyclic entries; strict callers can reject the registry up front.
func (r *Registry) Validate() error {
	_, err := BuildTree(r.Structure())
	return err
}
