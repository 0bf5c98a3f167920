// Package views bundles the default templates: one view per structural kind,
// the three child-title fragments, and one template per built-in element.
package views
