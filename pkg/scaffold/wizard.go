package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/goliatone/go-uibuilder/pkg/elements"
	"github.com/goliatone/go-uibuilder/pkg/structure"
)

const noParent = "(none)"

var keyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Wizard walks a user through describing an interface one element at a time
// and returns the resulting structure.
type Wizard struct {
	driver   PromptDriver
	logger   *slog.Logger
	elements []string
	kinds    []structure.Kind
}

// Option customises a Wizard.
type Option func(*Wizard)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithElements limits the control types offered for controls. Defaults to
// the built-in element registry.
func WithElements(registry *elements.Registry) Option {
	return func(w *Wizard) {
		if registry != nil {
			w.elements = registry.Names()
		}
	}
}

// NewWizard constructs a wizard prompting through driver.
func NewWizard(driver PromptDriver, opts ...Option) *Wizard {
	w := &Wizard{
		driver:   driver,
		logger:   slog.Default(),
		elements: elements.NewDefaultRegistry().Names(),
		kinds:    structure.Kinds(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Run prompts until the user declines to add another element.
func (w *Wizard) Run(ctx context.Context) (*structure.Structure, error) {
	if w.driver == nil {
		return nil, fmt.Errorf("scaffold: prompt driver is required")
	}

	out := structure.New()
	if err := w.driver.Info(ctx, "Describe the interface one element at a time."); err != nil {
		return nil, err
	}

	for {
		more, err := w.driver.Confirm(ctx, ConfirmConfig{
			Message: "Add an element?",
			Default: out.Len() == 0,
		})
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}

		key, d, err := w.element(ctx, out)
		if err != nil {
			return nil, err
		}
		out.Set(key, d)
		w.logger.Debug("scaffold: element added", "key", key, "type", d.Type, "parent", d.Parent)
	}
	return out, nil
}

func (w *Wizard) element(ctx context.Context, current *structure.Structure) (string, structure.Descriptor, error) {
	kindNames := make([]string, len(w.kinds))
	for idx, kind := range w.kinds {
		kindNames[idx] = kind.String()
	}
	kindIdx, err := w.driver.Select(ctx, SelectConfig{Message: "Element kind", Options: kindNames})
	if err != nil {
		return "", structure.Descriptor{}, err
	}
	if kindIdx < 0 || kindIdx >= len(w.kinds) {
		return "", structure.Descriptor{}, fmt.Errorf("scaffold: invalid kind selection %d", kindIdx)
	}
	kind := w.kinds[kindIdx]

	key, err := w.driver.Input(ctx, InputConfig{
		Message: "Key",
		Help:    "Unique identifier; also the default id of the element.",
		Validator: func(value string) error {
			value = strings.TrimSpace(value)
			if !keyPattern.MatchString(value) {
				return fmt.Errorf("key must start with a letter and contain letters, digits, _ or -")
			}
			if current.Has(value) {
				return fmt.Errorf("key %q already used", value)
			}
			return nil
		},
	})
	if err != nil {
		return "", structure.Descriptor{}, err
	}
	key = strings.TrimSpace(key)

	d := structure.Descriptor{Type: kind.String()}
	if d.Parent, err = w.parent(ctx, current); err != nil {
		return "", structure.Descriptor{}, err
	}

	switch kind {
	case structure.KindHTML:
		if d.HTML, err = w.driver.TextArea(ctx, TextAreaConfig{Message: "Markup"}); err != nil {
			return "", structure.Descriptor{}, err
		}
		return key, d, nil
	case structure.KindControl:
		typeIdx, err := w.driver.Select(ctx, SelectConfig{Message: "Control type", Options: w.elements})
		if err != nil {
			return "", structure.Descriptor{}, err
		}
		if typeIdx >= 0 && typeIdx < len(w.elements) {
			d.Type = w.elements[typeIdx]
		}
		label, err := w.driver.Input(ctx, InputConfig{Message: "Label"})
		if err != nil {
			return "", structure.Descriptor{}, err
		}
		if label = strings.TrimSpace(label); label != "" {
			d.Attrs = map[string]any{"label": label}
		}
	}

	if d.Title, err = w.driver.Input(ctx, InputConfig{Message: "Title"}); err != nil {
		return "", structure.Descriptor{}, err
	}
	d.Title = strings.TrimSpace(d.Title)

	if kind != structure.KindControl {
		if d.Scroll, err = w.driver.Confirm(ctx, ConfirmConfig{Message: "Scrollable?"}); err != nil {
			return "", structure.Descriptor{}, err
		}
	}
	return key, d, nil
}

func (w *Wizard) parent(ctx context.Context, current *structure.Structure) (string, error) {
	options := append([]string{noParent}, current.Keys()...)
	if len(options) == 1 {
		return "", nil
	}
	idx, err := w.driver.Select(ctx, SelectConfig{Message: "Parent", Options: options, PageSize: 10})
	if err != nil {
		return "", err
	}
	if idx <= 0 || idx >= len(options) {
		return "", nil
	}
	return options[idx], nil
}
