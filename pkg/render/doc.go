// Package render turns a structure of descriptors into markup.
//
// The Renderer builds the parent/child tree, walks it depth first and renders
// every node through the view registered for its kind. Tab, toggle, accordion
// and settings wrappers pre-render helper views for their children; html
// nodes embed their raw markup; every other type is a leaf control handed to
// the element factory. The concatenated result has line breaks and tabs
// removed.
//
// Unknown view kinds, missing templates and cyclic parent chains are logged
// and recovered by default. WithStrict turns them into returned errors.
package render
