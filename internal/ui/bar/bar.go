// Package bar composes a completing search field with search options
// (mode, case, wrap, dot-all, direction) and saved searches. Committing
// the field emits a SearchRequested message carrying the full spec.
package bar

import (
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/recall/internal/logging"
	"github.com/abelbrown/recall/internal/search"
	"github.com/abelbrown/recall/internal/store"
	"github.com/abelbrown/recall/internal/ui/input"
)

// FieldName keys the search field's history in the store.
const FieldName = "search"

// stateKey is the settings entry holding the last search options.
const stateKey = "search_state"

// SearchRequested is emitted when the user commits a non-empty search.
type SearchRequested struct {
	Spec search.Spec
}

// Settings is the slice of the store the bar needs for option state.
type Settings interface {
	Setting(key string) (string, bool, error)
	SetSetting(key, value string) error
}

// SavedSearchStore persists named searches.
type SavedSearchStore interface {
	SavedSearches() ([]store.SavedSearch, error)
	PutSavedSearch(ss store.SavedSearch) error
	DeleteSavedSearches(names []string) error
}

// Options configures a search bar.
type Options struct {
	Completer    input.Completer
	History      input.HistoryStore
	Settings     Settings
	Saved        SavedSearchStore
	MaxHistory   int
	DisablePopup bool
}

// Model is the search bar.
type Model struct {
	Input input.Model

	// spec is shared with the commit closure handed to the field, so
	// option toggles made after construction are seen at commit time.
	spec     *search.Spec
	settings Settings
	saved    SavedSearchStore
	width    int
}

// New creates a search bar, restoring the previous option state if one
// was saved.
func New(opts Options) Model {
	spec := search.DefaultSpec()

	if opts.Settings != nil {
		if raw, ok, err := opts.Settings.Setting(stateKey); err != nil {
			logging.Warn("restore search state failed", "error", err)
		} else if ok {
			if err := json.Unmarshal([]byte(raw), &spec); err != nil {
				logging.Warn("corrupt search state, using defaults", "error", err)
				spec = search.DefaultSpec()
			}
		}
	}

	m := Model{
		spec:     &spec,
		settings: opts.Settings,
		saved:    opts.Saved,
	}

	specRef := m.spec
	m.Input = input.New(input.Options{
		Name:         FieldName,
		Mode:         input.ModeSearch,
		MaxHistory:   opts.MaxHistory,
		Completer:    opts.Completer,
		Store:        opts.History,
		DisablePopup: opts.DisablePopup,
		OnCommit: func(text string) tea.Cmd {
			if strings.TrimSpace(text) == "" {
				return nil
			}
			spec := *specRef
			spec.Find = text
			return func() tea.Msg {
				return SearchRequested{Spec: spec}
			}
		},
	})

	return m
}

// Spec returns the current option state with the field text as the find
// expression.
func (m Model) Spec() search.Spec {
	spec := *m.spec
	spec.Find = m.Input.Value()
	return spec
}

// Focus focuses the search field.
func (m *Model) Focus() tea.Cmd {
	return m.Input.Focus()
}

// Blur removes focus and dismisses the popup.
func (m *Model) Blur() {
	m.Input.Blur()
	m.Input.HideCompletionPopup()
}

// SetWidth sets the rendered width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Update handles option toggles itself and delegates everything else to
// the field.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "alt+m":
			if m.spec.Mode == search.ModeRegex {
				m.spec.Mode = search.ModeNormal
			} else {
				m.spec.Mode = search.ModeRegex
			}
			m.saveState()
			return m, nil

		case "alt+c":
			m.spec.CaseSensitive = !m.spec.CaseSensitive
			m.saveState()
			return m, nil

		case "alt+s":
			m.spec.DotAll = !m.spec.DotAll
			m.saveState()
			return m, nil

		case "alt+w":
			m.spec.Wrap = !m.spec.Wrap
			m.saveState()
			return m, nil

		case "alt+d":
			if m.spec.Direction == search.DirectionUp {
				m.spec.Direction = search.DirectionDown
			} else {
				m.spec.Direction = search.DirectionUp
			}
			m.saveState()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// saveState persists the option state. Failures are logged and ignored;
// options still apply for the session.
func (m Model) saveState() {
	if m.settings == nil {
		return
	}
	data, err := json.Marshal(m.spec)
	if err != nil {
		return
	}
	if err := m.settings.SetSetting(stateKey, string(data)); err != nil {
		logging.Warn("save search state failed", "error", err)
	}
}

// SaveCurrentSearch stores the current spec under a name.
func (m Model) SaveCurrentSearch(name string) error {
	if m.saved == nil {
		return nil
	}
	return m.saved.PutSavedSearch(m.Spec().ToSaved(name))
}

// LoadSaved applies a saved search to the bar: expression into the
// field, options into the toggles.
func (m *Model) LoadSaved(ss store.SavedSearch) {
	spec := search.FromSaved(ss)
	*m.spec = spec
	m.Input.SetValue(spec.Find)
	m.saveState()
}

// SavedSearches lists stored searches filtered by the given query.
func (m Model) SavedSearches(query string) ([]store.SavedSearch, error) {
	if m.saved == nil {
		return nil, nil
	}
	all, err := m.saved.SavedSearches()
	if err != nil {
		return nil, err
	}
	return search.FilterSaved(all, query), nil
}

var (
	flagOn = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#58a6ff")).
		Bold(true)

	flagOff = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#484f58"))
)

// View renders the field followed by a one-line option summary.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.Input.View())
	b.WriteString("\n")

	flag := func(on bool, label string) {
		if on {
			b.WriteString(flagOn.Render("[" + label + "]"))
		} else {
			b.WriteString(flagOff.Render("[" + label + "]"))
		}
		b.WriteString(" ")
	}

	flag(m.spec.Mode == search.ModeRegex, "regex")
	flag(m.spec.CaseSensitive, "Aa")
	flag(m.spec.DotAll, ".s")
	flag(m.spec.Wrap, "wrap")
	if m.spec.Direction == search.DirectionUp {
		b.WriteString(flagOn.Render("[↑]"))
	} else {
		b.WriteString(flagOff.Render("[↓]"))
	}

	return b.String()
}
