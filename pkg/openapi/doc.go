// Package openapi imports a structure from an OpenAPI 3 component schema.
//
// The named schema becomes a settings group, nested objects become nested
// settings and every scalar property becomes a control whose element type is
// derived from the property's type, format and enum. Properties are ordered by
// their x-uibuilder-order extension, then by name.
package openapi
