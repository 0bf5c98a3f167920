package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-uibuilder/pkg/render/template"
)

// DefaultExtension is appended to template names without one.
const DefaultExtension = ".tpl"

// Option configures the pongo2 adapter before construction.
type Option func(*config)

type config struct {
	baseDir   string
	files     fs.FS
	extension string
}

// WithBaseDir loads templates from a directory on disk. It takes precedence
// over WithFS so a directory can override individual bundled templates.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// Engine renders pongo2 templates. Parsed templates are cached per path.
// Output is autoescaped; templates mark prebuilt markup with |safe.
type Engine struct {
	mu sync.RWMutex

	set     *pongo2.TemplateSet
	cache   map[string]*pongo2.Template
	ext     string
	baseDir string
	files   fs.FS
}

var (
	_ template.TemplateRenderer = (*Engine)(nil)
	_ template.Locator          = (*Engine)(nil)
)

// New constructs an Engine. At least one template source is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: DefaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.baseDir == "" && cfg.files == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}

	registerFilters()

	return &Engine{
		set:     pongo2.NewSet("uibuilder", loaders...),
		cache:   make(map[string]*pongo2.Template),
		ext:     cfg.extension,
		baseDir: cfg.baseDir,
		files:   cfg.files,
	}, nil
}

// RenderTemplate implements template.TemplateRenderer.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := e.path(name)

	tmpl, err := e.load(path)
	if err != nil {
		return "", err
	}

	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data for %q: %w", path, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// GlobalContext implements template.TemplateRenderer. Functions are kept as
// callables so templates can invoke them.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}

	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: convert globals: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(ctx)
	return nil
}

// HasTemplate implements template.Locator.
func (e *Engine) HasTemplate(name string) bool {
	if e == nil || e.set == nil {
		return false
	}
	path := e.path(name)

	e.mu.RLock()
	_, cached := e.cache[path]
	e.mu.RUnlock()
	return cached || e.exists(path)
}

func (e *Engine) path(name string) string {
	path := strings.TrimSpace(name)
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	return path
}

func (e *Engine) exists(path string) bool {
	if e.baseDir != "" {
		candidate := path
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(e.baseDir, path)
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return true
		}
	}
	if e.files != nil {
		if info, err := fs.Stat(e.files, path); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}

	if !e.exists(path) {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, template.ErrTemplateNotFound)
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

// toContext normalises view data into plain maps, slices and scalars so
// templates see struct values by their JSON field names.
func toContext(data any) (pongo2.Context, error) {
	var m map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		m = v
	case map[string]any:
		m = v
	default:
		decoded, err := roundTrip(v)
		if err != nil {
			return nil, err
		}
		var ok bool
		if m, ok = decoded.(map[string]any); !ok {
			return nil, fmt.Errorf("gotemplate: data must be an object, got %T", v)
		}
	}

	out := make(pongo2.Context, len(m))
	for key, value := range m {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		converted, err := convert(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = converted
	}
	return out, nil
}

func convert(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool:
		return v, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := convert(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := convert(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	}
	if reflect.ValueOf(value).Kind() == reflect.Func {
		return value, nil
	}
	decoded, err := roundTrip(value)
	if err != nil {
		return nil, err
	}
	return convert(decoded)
}

func roundTrip(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
