package scaffold

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestSurveyDriver_Info(t *testing.T) {
	var buf bytes.Buffer
	driver := &SurveyDriver{out: &buf}

	if err := driver.Info(context.Background(), "hello"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSurveyDriver_CancelledContextSkipsPrompt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	driver := &SurveyDriver{out: &buf}

	calls := map[string]func() error{
		"input": func() error {
			_, err := driver.Input(ctx, InputConfig{Message: "Key"})
			return err
		},
		"confirm": func() error {
			_, err := driver.Confirm(ctx, ConfirmConfig{Message: "More?"})
			return err
		},
		"select": func() error {
			_, err := driver.Select(ctx, SelectConfig{Message: "Kind", Options: []string{"section"}})
			return err
		},
		"textarea": func() error {
			_, err := driver.TextArea(ctx, TextAreaConfig{Message: "Markup"})
			return err
		},
		"info": func() error {
			return driver.Info(ctx, "ignored")
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, context.Canceled) {
				t.Fatalf("expected context.Canceled, got %v", err)
			}
		})
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written, got %q", buf.String())
	}
}

func TestSurveyDriver_SelectRequiresOptions(t *testing.T) {
	driver := &SurveyDriver{}
	idx, err := driver.Select(context.Background(), SelectConfig{Message: "Parent"})
	if err == nil || idx != -1 {
		t.Fatalf("expected error and -1, got %d, %v", idx, err)
	}
}
