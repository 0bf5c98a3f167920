package scaffold

import (
	"context"
	"errors"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("scaffold: aborted")

// InputConfig describes a single-line answer such as an element key, label
// or title. Validator runs on every submitted value.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig describes a yes/no question.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig describes a pick from Options: element kinds, control types
// or parent keys.
type SelectConfig struct {
	Message  string
	Options  []string
	Help     string
	PageSize int
}

// TextAreaConfig describes a multi-line answer, used for raw html markup.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver asks the questions the wizard needs. Tests script it; the CLI
// uses SurveyDriver.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	// Select returns the index of the chosen option.
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}
