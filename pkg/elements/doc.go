// Package elements implements the element factory the renderer hands leaf
// controls to. A Registry maps control types to definitions; Factory binds a
// registry to a template renderer and produces Elements whose Render method
// returns the control markup.
package elements
