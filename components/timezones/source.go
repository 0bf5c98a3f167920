package timezones

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-uibuilder/pkg/elements"
)

// Source serves timezone options for the timezone element. It implements
// elements.OptionSource.
type Source struct {
	zones []string
	label func(zone string) string

	once    sync.Once
	options []elements.Option
	err     error
}

var _ elements.OptionSource = (*Source)(nil)

// SourceOption customises a Source.
type SourceOption func(*Source)

// WithZones replaces the embedded zone list.
func WithZones(zones []string) SourceOption {
	return func(s *Source) {
		s.zones = slices.Clone(zones)
	}
}

// WithLabel sets how a zone name is shown. The default keeps the IANA name
// and replaces underscores with spaces ("America/New_York" reads
// "America/New York").
func WithLabel(fn func(zone string) string) SourceOption {
	return func(s *Source) {
		if fn != nil {
			s.label = fn
		}
	}
}

// NewSource builds a Source. Zones are loaded on first use.
func NewSource(opts ...SourceOption) *Source {
	s := &Source{label: defaultLabel}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Options returns the zones matching q, prefix matches first.
func (s *Source) Options(ctx context.Context, q elements.OptionQuery) ([]elements.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.once.Do(s.load)
	if s.err != nil {
		return nil, s.err
	}
	return elements.SearchOptions(s.options, q), nil
}

func (s *Source) load() {
	zones := s.zones
	if zones == nil {
		zones, s.err = DefaultZones()
		if s.err != nil {
			return
		}
	}
	s.options = make([]elements.Option, 0, len(zones))
	for _, zone := range zones {
		s.options = append(s.options, elements.Option{Value: zone, Label: s.label(zone)})
	}
}

func defaultLabel(zone string) string {
	return strings.ReplaceAll(zone, "_", " ")
}
