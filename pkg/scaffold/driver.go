package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// SurveyDriver asks wizard questions on a terminal through survey.
type SurveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

var _ PromptDriver = (*SurveyDriver)(nil)

// NewSurveyDriver prompts on the process terminal.
func NewSurveyDriver() *SurveyDriver {
	return &SurveyDriver{out: os.Stdout}
}

// NewSurveyDriverWithStdio prompts on explicit streams.
func NewSurveyDriverWithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *SurveyDriver {
	return &SurveyDriver{
		out:  out,
		opts: []survey.AskOpt{survey.WithStdio(in, out, errOut)},
	}
}

// ask checks ctx before prompting, since survey blocks on the terminal and
// cannot be interrupted by cancellation.
func (d *SurveyDriver) ask(ctx context.Context, prompt survey.Prompt, answer any, extra ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := append(append([]survey.AskOpt(nil), d.opts...), extra...)
	err := survey.AskOne(prompt, answer, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// Input asks for one line of text, re-prompting while cfg.Validator fails.
func (d *SurveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var extra []survey.AskOpt
	if validate := cfg.Validator; validate != nil {
		extra = append(extra, survey.WithValidator(func(ans any) error {
			text, _ := ans.(string)
			return validate(text)
		}))
	}
	var answer string
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &answer, extra...)
	return answer, err
}

// Confirm asks a yes/no question.
func (d *SurveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var answer bool
	err := d.ask(ctx, &survey.Confirm{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &answer)
	return answer, err
}

// Select asks for one of cfg.Options and returns its index.
func (d *SurveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if len(cfg.Options) == 0 {
		return -1, fmt.Errorf("scaffold: %q has no options", cfg.Message)
	}
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	var index int
	if err := d.ask(ctx, prompt, &index); err != nil {
		return -1, err
	}
	return index, nil
}

// TextArea asks for multi-line text.
func (d *SurveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Multiline{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &answer)
	return answer, err
}

// Info prints a line without waiting for input.
func (d *SurveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
