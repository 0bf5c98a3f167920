package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the project configuration file looked up by the CLI.
	FileName = "uibuilder.yaml"

	// DefaultListen is the preview server address.
	DefaultListen = "localhost:7070"
)

// Config mirrors uibuilder.yaml.
type Config struct {
	// Structure is the YAML structure file rendered by default.
	Structure string `yaml:"structure,omitempty"`

	// ViewsDir points at templates that override the embedded set.
	ViewsDir string `yaml:"views_dir,omitempty"`

	// Strict turns cycles, unknown kinds and missing templates into errors.
	Strict bool `yaml:"strict,omitempty"`

	// ScrollClass replaces the class added to scrollable containers.
	ScrollClass string `yaml:"scroll_class,omitempty"`

	// SanitizeHTML cleans literal html nodes with the UGC policy.
	SanitizeHTML bool `yaml:"sanitize_html,omitempty"`

	// Listen is the preview server address.
	Listen string `yaml:"listen,omitempty"`

	Theme ThemeConfig `yaml:"theme,omitempty"`

	path string
}

// ThemeConfig declares an inline theme manifest.
type ThemeConfig struct {
	Name      string                   `yaml:"name,omitempty"`
	Variant   string                   `yaml:"variant,omitempty"`
	Templates map[string]string        `yaml:"templates,omitempty"`
	Tokens    map[string]string        `yaml:"tokens,omitempty"`
	Variants  map[string]VariantConfig `yaml:"variants,omitempty"`
}

// VariantConfig overrides tokens and templates for one theme variant.
type VariantConfig struct {
	Templates map[string]string `yaml:"templates,omitempty"`
	Tokens    map[string]string `yaml:"tokens,omitempty"`
}

// Overrides carries command-line values. Nil pointers and empty strings leave
// the file value untouched.
type Overrides struct {
	Structure    string
	ViewsDir     string
	ScrollClass  string
	Listen       string
	ThemeVariant string
	Strict       *bool
	SanitizeHTML *bool
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{Listen: DefaultListen}
}

// Parse decodes a project file. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	return cfg, nil
}

// Load reads and parses the file at path. Relative paths inside the file are
// resolved against its directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.path = path
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// LoadOptional loads path when it exists and returns defaults otherwise.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return New(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return cfg, err
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Apply overlays command-line values onto c.
func (c *Config) Apply(o Overrides) {
	if o.Structure != "" {
		c.Structure = o.Structure
	}
	if o.ViewsDir != "" {
		c.ViewsDir = o.ViewsDir
	}
	if o.ScrollClass != "" {
		c.ScrollClass = o.ScrollClass
	}
	if o.Listen != "" {
		c.Listen = o.Listen
	}
	if o.ThemeVariant != "" {
		c.Theme.Variant = o.ThemeVariant
	}
	if o.Strict != nil {
		c.Strict = *o.Strict
	}
	if o.SanitizeHTML != nil {
		c.SanitizeHTML = *o.SanitizeHTML
	}
}

// HasTheme reports whether the file declares a theme.
func (c *Config) HasTheme() bool {
	t := c.Theme
	return t.Name != "" || len(t.Templates) > 0 || len(t.Tokens) > 0 || len(t.Variants) > 0
}

// Manifest converts the theme block into a go-theme manifest.
func (c *Config) Manifest() *theme.Manifest {
	if !c.HasTheme() {
		return nil
	}
	name := c.Theme.Name
	if name == "" {
		name = "default"
	}
	m := &theme.Manifest{
		Name:      name,
		Tokens:    cloneStrings(c.Theme.Tokens),
		Templates: cloneStrings(c.Theme.Templates),
	}
	if len(c.Theme.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(c.Theme.Variants))
		for key, v := range c.Theme.Variants {
			m.Variants[key] = theme.Variant{
				Tokens:    cloneStrings(v.Tokens),
				Templates: cloneStrings(v.Templates),
			}
		}
	}
	return m
}

func (c *Config) resolvePaths(base string) {
	c.Structure = resolve(base, c.Structure)
	c.ViewsDir = resolve(base, c.ViewsDir)
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func cloneStrings(in map[string]string) map[string]string {
	if len(in) == 0 {
		return map[string]string{}
	}
	return maps.Clone(in)
}
