// Package config loads the uibuilder.yaml project file used by the CLI and
// the preview server.
//
// A minimal project file:
//
//	structure: admin/settings.yaml
//	views_dir: views
//	strict: true
//	theme:
//	  name: acme
//	  variant: dark
//	  tokens:
//	    brand: "#0055aa"
//
// Command-line flags override file values through Config.Apply.
package config
