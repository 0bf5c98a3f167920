package timezones

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var embeddedZones string

var defaultZones = sync.OnceValues(func() ([]string, error) {
	return LoadZones(strings.NewReader(embeddedZones))
})

// DefaultZones returns the embedded IANA zone names, sorted. The slice is a
// copy the caller may modify.
func DefaultZones() ([]string, error) {
	zones, err := defaultZones()
	if err != nil {
		return nil, fmt.Errorf("timezones: embedded list: %w", err)
	}
	return slices.Clone(zones), nil
}

// LoadZones reads a zone list with one name per line. Blank lines and lines
// starting with # are ignored; the result is sorted without duplicates.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: nil reader")
	}

	var zones []string
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		name, _, _ := strings.Cut(lines.Text(), "#")
		if name = strings.TrimSpace(name); name != "" {
			zones = append(zones, name)
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("timezones: read list: %w", err)
	}

	slices.Sort(zones)
	return slices.Compact(zones), nil
}
