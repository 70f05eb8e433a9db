// Package popup implements the completion overlay: a filtered candidate
// list with keyboard-driven highlight navigation, rendered beneath the
// input field it completes.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// DefaultMaxRows is the candidate window height used when a caller does
// not configure one.
const DefaultMaxRows = 8

// Popup is a completion candidate list. The zero value is unusable;
// call New.
type Popup struct {
	items      []string
	filtered   []string
	query      string
	highlight  int // -1 = no candidate highlighted
	visible    bool
	width      int
	maxRows    int
	associated []string // ids of widgets that belong to this popup's UI group
}

// New creates an empty, hidden popup.
func New() *Popup {
	return &Popup{highlight: -1, maxRows: DefaultMaxRows, width: 40}
}

// SetItems replaces the full candidate list and re-applies the current
// query.
func (p *Popup) SetItems(items []string) {
	p.items = items
	p.applyFilter()
}

// Items returns the unfiltered candidate list.
func (p *Popup) Items() []string {
	return p.items
}

// SetQuery filters candidates against the given text. Filtering resets
// the highlight: nothing is selected until the user navigates.
func (p *Popup) SetQuery(query string) {
	p.query = query
	p.applyFilter()
}

// applyFilter recomputes the visible candidates. An empty query shows
// everything in history order; otherwise candidates are fuzzy-ranked.
func (p *Popup) applyFilter() {
	p.highlight = -1
	if p.query == "" {
		p.filtered = p.items
		return
	}

	matches := fuzzy.Find(p.query, p.items)
	filtered := make([]string, len(matches))
	for i, m := range matches {
		filtered[i] = m.Str
	}
	p.filtered = filtered
}

// Show makes the popup visible.
func (p *Popup) Show() {
	p.visible = true
}

// Hide dismisses the popup. Idempotent.
func (p *Popup) Hide() {
	p.visible = false
	p.highlight = -1
}

// Visible reports whether the popup is showing.
func (p *Popup) Visible() bool {
	return p.visible
}

// CurrentText returns the highlighted candidate, or "" when nothing is
// highlighted.
func (p *Popup) CurrentText() string {
	if p.highlight < 0 || p.highlight >= len(p.filtered) {
		return ""
	}
	return p.filtered[p.highlight]
}

// MoveHighlight advances the highlight to the next candidate, wrapping
// past the end. With no candidates it does nothing.
func (p *Popup) MoveHighlight() {
	if len(p.filtered) == 0 {
		return
	}
	p.highlight = (p.highlight + 1) % len(p.filtered)
}

// Candidates returns the currently filtered candidate list.
func (p *Popup) Candidates() []string {
	return p.filtered
}

// Highlighted returns the highlight index, -1 when nothing is selected.
func (p *Popup) Highlighted() int {
	return p.highlight
}

// AddAssociated registers a widget id whose interactions count as part
// of this popup's UI group, so the owning field can keep the popup open
// while focus moves between them.
func (p *Popup) AddAssociated(id string) {
	p.associated = append(p.associated, id)
}

// Associated reports whether the id belongs to this popup's UI group.
func (p *Popup) Associated(id string) bool {
	for _, a := range p.associated {
		if a == id {
			return true
		}
	}
	return false
}

// SetWidth sets the rendered width.
func (p *Popup) SetWidth(w int) {
	p.width = w
}

// SetMaxRows sets the number of visible candidate rows.
func (p *Popup) SetMaxRows(n int) {
	if n > 0 {
		p.maxRows = n
	}
}

// HandlesKey reports whether the popup claims the given canonical key
// while visible.
func (p *Popup) HandlesKey(key string) bool {
	switch key {
	case "up", "ctrl+p", "down", "ctrl+n", "esc":
		return true
	}
	return false
}

// HandleKey processes a canonical key name and reports whether it was
// consumed. Navigation moves the highlight; esc dismisses.
func (p *Popup) HandleKey(key string) bool {
	if !p.visible {
		return false
	}

	switch key {
	case "down", "ctrl+n":
		p.MoveHighlight()
		return true

	case "up", "ctrl+p":
		if len(p.filtered) == 0 {
			return true
		}
		if p.highlight <= 0 {
			p.highlight = len(p.filtered) - 1
		} else {
			p.highlight--
		}
		return true

	case "esc":
		p.Hide()
		return true
	}

	return false
}

// Styles follow the palette look: dark bordered container, bright
// highlight bar, muted hints.
var (
	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#30363d")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9d1d9")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#58a6ff")).
			Background(lipgloss.Color("#21262d")).
			Bold(true).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b949e"))
)

// View renders the candidate list. Returns "" while hidden.
func (p *Popup) View() string {
	if !p.visible {
		return ""
	}

	var b strings.Builder

	maxVisible := p.maxRows
	if len(p.filtered) < maxVisible {
		maxVisible = len(p.filtered)
	}

	// Scroll the window to keep the highlight visible.
	start := 0
	if p.highlight >= maxVisible {
		start = p.highlight - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(p.filtered) {
		end = len(p.filtered)
	}

	if start > 0 {
		b.WriteString(mutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		if i == p.highlight {
			b.WriteString(selectedStyle.Render("› " + p.filtered[i]))
		} else {
			b.WriteString(itemStyle.Render("  " + p.filtered[i]))
		}
		b.WriteString("\n")
	}

	if end < len(p.filtered) {
		b.WriteString(mutedStyle.Render("  ↓ more"))
		b.WriteString("\n")
	}

	if len(p.filtered) == 0 {
		b.WriteString(mutedStyle.Render("  No matches"))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render("↑↓ navigate  tab complete  esc dismiss"))

	return containerStyle.Width(p.width).Render(b.String())
}
