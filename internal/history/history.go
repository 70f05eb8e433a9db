// Package history implements bounded, deduplicated, most-recently-used
// value lists for input fields.
package history

import (
	"slices"
	"strings"
)

// DefaultMax is the history bound used when a caller passes max <= 0.
const DefaultMax = 100

// Add records text as the most recent entry of list and returns the
// updated list. Empty or whitespace-only text leaves the list unchanged.
// An existing exact-match entry is moved to the front rather than
// duplicated, and the result is truncated to max entries.
func Add(list []string, text string, max int) []string {
	if strings.TrimSpace(text) == "" {
		return list
	}
	if max <= 0 {
		max = DefaultMax
	}

	if i := slices.Index(list, text); i != -1 {
		list = append(list[:i], list[i+1:]...)
	}
	list = append([]string{text}, list...)

	if len(list) > max {
		list = list[:max]
	}
	return dedup(list)
}

// dedup removes repeated entries, keeping the first occurrence. Lists
// built through Add are already unique; this guards against malformed
// data loaded from storage.
func dedup(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := list[:0]
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Cursor walks a history list for prev/next recall, newest first.
// The zero value is ready to use; index -1 means not navigating.
type Cursor struct {
	index int
}

// NewCursor returns a cursor positioned outside the list.
func NewCursor() *Cursor {
	return &Cursor{index: -1}
}

// Prev moves toward older entries and returns the entry at the new
// position. Returns false if the list is empty or already at the oldest.
func (c *Cursor) Prev(list []string) (string, bool) {
	if len(list) == 0 {
		return "", false
	}
	if c.index < len(list)-1 {
		c.index++
	}
	return list[c.index], true
}

// Next moves toward newer entries. Returns false with an empty string
// once navigation runs past the newest entry, signalling the caller to
// restore whatever the user had typed.
func (c *Cursor) Next(list []string) (string, bool) {
	if len(list) == 0 || c.index <= 0 {
		c.index = -1
		return "", false
	}
	c.index--
	return list[c.index], true
}

// Reset ends navigation.
func (c *Cursor) Reset() {
	c.index = -1
}

// Navigating reports whether the cursor is inside the list.
func (c *Cursor) Navigating() bool {
	return c.index != -1
}
