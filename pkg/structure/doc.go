// Package structure holds the declarative side of the interface builder:
// element descriptors, the insertion-ordered registry they are registered
// into, and the tree builder that turns parent-keyed entries into the nested
// hierarchy consumed by pkg/render. Structures can also be loaded from YAML
// documents whose top-level groups mirror the five registration calls.
package structure
