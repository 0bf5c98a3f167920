package render

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownViewKind is matched when a structural kind has no view.
	ErrUnknownViewKind = errors.New("render: unknown view kind")
	// ErrMissingTemplate is matched when a view's template cannot be found.
	ErrMissingTemplate = errors.New("render: missing template")
	// ErrElementFactory is matched when the element factory fails for a leaf.
	ErrElementFactory = errors.New("render: element factory failed")
)

// UnknownViewKindError reports a kind without a registered view.
type UnknownViewKindError struct {
	Kind string
	Key  string
}

func (e *UnknownViewKindError) Error() string {
	return fmt.Sprintf("%s %q (key %q)", ErrUnknownViewKind.Error(), e.Kind, e.Key)
}

func (e *UnknownViewKindError) Is(target error) bool {
	return target == ErrUnknownViewKind
}

// MissingTemplateError reports a view whose template could not be loaded.
type MissingTemplateError struct {
	View     string
	Template string
	Err      error
}

func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("%s %q for view %q", ErrMissingTemplate.Error(), e.Template, e.View)
}

func (e *MissingTemplateError) Is(target error) bool {
	return target == ErrMissingTemplate
}

func (e *MissingTemplateError) Unwrap() error {
	return e.Err
}

// ElementError wraps a failure raised by the element factory or the element
// it returned.
type ElementError struct {
	Type string
	Key  string
	Err  error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%s for type %q (key %q): %v", ErrElementFactory.Error(), e.Type, e.Key, e.Err)
}

func (e *ElementError) Is(target error) bool {
	return target == ErrElementFactory
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
