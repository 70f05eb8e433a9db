// Package search defines search specifications: what to find, how to
// interpret the pattern, and which direction to walk matches in.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abelbrown/recall/internal/store"
)

// Mode controls how the find expression is interpreted.
type Mode string

const (
	ModeNormal Mode = "normal" // exact text
	ModeRegex  Mode = "regex"  // regular expression
)

// Direction controls which way match navigation walks.
type Direction string

const (
	DirectionDown Direction = "down"
	DirectionUp   Direction = "up"
)

// Spec is a complete search specification.
type Spec struct {
	Find          string    `json:"find"`
	Replace       string    `json:"replace,omitempty"`
	Mode          Mode      `json:"mode"`
	CaseSensitive bool      `json:"case_sensitive"`
	DotAll        bool      `json:"dot_all"`
	Wrap          bool      `json:"wrap"`
	Direction     Direction `json:"direction"`
}

// DefaultSpec returns the initial search state.
func DefaultSpec() Spec {
	return Spec{
		Mode:      ModeNormal,
		Wrap:      true,
		Direction: DirectionDown,
	}
}

// Compile builds the matcher for this spec. Normal mode treats the find
// text literally; regex mode passes it through. Case sensitivity and
// dot-all are applied as inline flags.
func (s Spec) Compile() (*regexp.Regexp, error) {
	if s.Find == "" {
		return nil, fmt.Errorf("empty search expression")
	}

	pat := s.Find
	if s.Mode != ModeRegex {
		pat = regexp.QuoteMeta(pat)
	}

	var flags string
	if !s.CaseSensitive {
		flags += "i"
	}
	if s.DotAll {
		flags += "s"
	}
	if flags != "" {
		pat = "(?" + flags + ")" + pat
	}

	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, fmt.Errorf("compile search %q: %w", s.Find, err)
	}
	return re, nil
}

// ToSaved converts the spec into a persistable saved search.
func (s Spec) ToSaved(name string) store.SavedSearch {
	return store.SavedSearch{
		Name:          name,
		Find:          s.Find,
		Replace:       s.Replace,
		Mode:          string(s.Mode),
		CaseSensitive: s.CaseSensitive,
		DotAll:        s.DotAll,
		Wrap:          s.Wrap,
	}
}

// FromSaved rebuilds a spec from its stored form.
func FromSaved(ss store.SavedSearch) Spec {
	mode := Mode(ss.Mode)
	if mode != ModeRegex {
		mode = ModeNormal
	}
	return Spec{
		Find:          ss.Find,
		Replace:       ss.Replace,
		Mode:          mode,
		CaseSensitive: ss.CaseSensitive,
		DotAll:        ss.DotAll,
		Wrap:          ss.Wrap,
		Direction:     DirectionDown,
	}
}

// FilterSaved returns the saved searches whose name or find expression
// contains the query, case-insensitively. An empty query matches all.
func FilterSaved(searches []store.SavedSearch, query string) []store.SavedSearch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return searches
	}

	var out []store.SavedSearch
	for _, ss := range searches {
		if strings.Contains(strings.ToLower(ss.Name), query) ||
			strings.Contains(strings.ToLower(ss.Find), query) {
			out = append(out, ss)
		}
	}
	return out
}

// NextMatch walks match indexes in the spec's direction. Given the index
// of the current match (or -1 for none), it returns the next index among
// total matches, honoring Wrap. ok is false when there is nowhere to go.
func (s Spec) NextMatch(current, total int) (next int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	if current < 0 {
		if s.Direction == DirectionUp {
			return total - 1, true
		}
		return 0, true
	}

	if s.Direction == DirectionUp {
		next = current - 1
		if next < 0 {
			if !s.Wrap {
				return current, false
			}
			next = total - 1
		}
		return next, true
	}

	next = current + 1
	if next >= total {
		if !s.Wrap {
			return current, false
		}
		next = 0
	}
	return next, true
}
