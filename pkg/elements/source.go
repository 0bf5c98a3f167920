package elements

import (
	"context"
	"slices"
	"strings"
)

// OptionQuery narrows an option lookup. An empty Search matches everything;
// a Limit of zero or less returns every match.
type OptionQuery struct {
	Search string
	Limit  int
}

// OptionSource supplies the choices of an element. The factory asks it for
// the full list when a descriptor brings no options of its own, and the
// preview server exposes it for remote search.
type OptionSource interface {
	Options(ctx context.Context, q OptionQuery) ([]Option, error)
}

// OptionSourceFunc adapts a function to the OptionSource interface.
type OptionSourceFunc func(ctx context.Context, q OptionQuery) ([]Option, error)

// Options calls f(ctx, q).
func (f OptionSourceFunc) Options(ctx context.Context, q OptionQuery) ([]Option, error) {
	return f(ctx, q)
}

// StaticOptions serves a fixed list through SearchOptions.
func StaticOptions(options []Option) OptionSource {
	options = slices.Clone(options)
	return OptionSourceFunc(func(ctx context.Context, q OptionQuery) ([]Option, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return SearchOptions(options, q), nil
	})
}

// SearchOptions filters options whose value or label contains q.Search,
// ignoring case. Prefix matches come first; otherwise the input order is
// kept.
func SearchOptions(options []Option, q OptionQuery) []Option {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	var prefix, inner []Option
	for _, option := range options {
		value := strings.ToLower(option.Value)
		label := strings.ToLower(option.Label)
		switch {
		case search == "" || strings.HasPrefix(value, search) || strings.HasPrefix(label, search):
			prefix = append(prefix, option)
		case strings.Contains(value, search) || strings.Contains(label, search):
			inner = append(inner, option)
		}
	}

	out := append(prefix, inner...)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	if out == nil {
		return []Option{}
	}
	return out
}

// OptionSource returns the source registered with the named element.
func (r *Registry) OptionSource(name string) (OptionSource, bool) {
	definition, ok := r.Definition(name)
	if !ok || definition.Options == nil {
		return nil, false
	}
	return definition.Options, true
}
