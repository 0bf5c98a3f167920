// Package template defines the renderer-agnostic template contract the
// interface builder renders views and element markup through. The pongo2
// backed implementation lives in the gotemplate subpackage.
package template
