// Package input implements a text field with history-backed completion.
// The field owns its transient state; candidates come from a Completer
// and committed values persist through a HistoryStore, both injected at
// construction.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/recall/internal/history"
	"github.com/abelbrown/recall/internal/logging"
)

// Completer is the contract the field consumes from its completion
// popup.
type Completer interface {
	Show()
	Hide()
	Visible() bool
	SetQuery(query string)
	SetItems(items []string)
	CurrentText() string
	MoveHighlight()
	HandlesKey(key string) bool
	HandleKey(key string) bool
	AddAssociated(id string)
}

// HistoryStore is the minimal persistence contract: ordered string
// lists keyed by field name. Absent fields yield a nil list.
type HistoryStore interface {
	GetHistory(field string) ([]string, error)
	SetHistory(field string, values []string) error
}

// KeyDecoder maps a raw key event to a canonical key name ("enter",
// "tab", "up", ...). The default decoder uses Bubble Tea's own naming.
type KeyDecoder func(tea.KeyMsg) string

// Mode selects the field's presentation.
type Mode int

const (
	ModeText   Mode = iota // plain text entry
	ModeSearch             // search field: slash prompt
)

// Options configures a field. Name is required; it keys the stored
// history and identifies the field within the popup's UI group.
type Options struct {
	Name        string
	Placeholder string
	Mode        Mode
	MaxHistory  int // 0 means history.DefaultMax

	// OnCommit is invoked with the field text when the user commits
	// (Enter or an external trigger). May be nil.
	OnCommit func(text string) tea.Cmd

	Completer Completer
	Store     HistoryStore
	Decode    KeyDecoder

	// DisablePopup suppresses the completion popup entirely; history
	// recall via up/down still works.
	DisablePopup bool
}

// Model is the Bubble Tea model for a completing text field.
type Model struct {
	name         string
	input        textinput.Model
	completer    Completer
	store        HistoryStore
	decode       KeyDecoder
	onCommit     func(string) tea.Cmd
	maxHistory   int
	disablePopup bool

	hist    []string // cached copy of the stored list
	cursor  *history.Cursor
	pending string // text typed before history recall began
}

// New creates a field and loads its history. A missing store entry or a
// store read error both start the field with empty history.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 256
	switch opts.Mode {
	case ModeSearch:
		ti.Prompt = "/ "
		if ti.Placeholder == "" {
			ti.Placeholder = "search..."
		}
	default:
		ti.Prompt = "> "
	}
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff")).Bold(true)

	max := opts.MaxHistory
	if max <= 0 {
		max = history.DefaultMax
	}

	decode := opts.Decode
	if decode == nil {
		decode = func(k tea.KeyMsg) string { return k.String() }
	}

	m := Model{
		name:         opts.Name,
		input:        ti,
		completer:    opts.Completer,
		store:        opts.Store,
		decode:       decode,
		onCommit:     opts.OnCommit,
		maxHistory:   max,
		disablePopup: opts.DisablePopup,
		cursor:       history.NewCursor(),
	}

	if m.store != nil {
		list, err := m.store.GetHistory(m.name)
		if err != nil {
			logging.Warn("load history failed", "field", m.name, "error", err)
			list = nil
		}
		m.hist = list
	}
	if m.completer != nil {
		m.completer.SetItems(m.hist)
		m.completer.AddAssociated(m.name)
	}

	return m
}

// Name returns the field's storage key.
func (m Model) Name() string {
	return m.name
}

// Value returns the current field text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the field text without touching history or the
// popup.
func (m *Model) SetValue(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}

// Focus places input focus on the field.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes input focus.
func (m *Model) Blur() {
	m.input.Blur()
}

// Focused reports whether the field has input focus.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// History returns the field's cached history list.
func (m Model) History() []string {
	return m.hist
}

// SetAllItems replaces the popup's candidate list wholesale.
func (m *Model) SetAllItems(items []string) {
	if m.completer != nil {
		m.completer.SetItems(items)
	}
}

// ApplyCompletion sets text as the field value and focuses the field.
// Empty text is a no-op reported by the false return.
func (m *Model) ApplyCompletion(text string) bool {
	if text == "" {
		return false
	}
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.input.Focus()
	return true
}

// HideCompletionPopup dismisses the popup if visible. Idempotent.
func (m *Model) HideCompletionPopup() {
	if m.completer != nil {
		m.completer.Hide()
	}
}

// popupVisible reports whether a usable popup is showing.
func (m Model) popupVisible() bool {
	return m.completer != nil && m.completer.Visible()
}

// Update handles messages. Key policy, in order: keys the visible popup
// claims are delegated and consumed; Enter commits; Tab applies the
// highlighted candidate or advances the highlight; up/down recall
// history when no popup is showing; everything else edits the field,
// and edits re-query the popup.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	key := m.decode(keyMsg)

	if m.popupVisible() && m.completer.HandlesKey(key) {
		m.completer.HandleKey(key)
		return m, nil
	}

	switch key {
	case "enter":
		return m.Commit()

	case "tab":
		if m.popupVisible() {
			if m.ApplyCompletion(m.completer.CurrentText()) {
				m.completer.Hide()
			} else {
				m.completer.MoveHighlight()
			}
			return m, nil
		}
		// No popup: tab has nothing to complete.
		return m, nil

	case "up", "ctrl+p":
		m.recallPrev()
		return m, nil

	case "down", "ctrl+n":
		m.recallNext()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)

	if m.input.Value() != before {
		m.cursor.Reset()
		if m.completer != nil && !m.disablePopup {
			m.completer.SetQuery(m.input.Value())
			m.completer.Show()
		}
	}

	return m, cmd
}

// Commit finalizes the current text: the popup is dismissed, the commit
// callback runs, and non-blank text is recorded as the most recent
// history entry and persisted.
func (m Model) Commit() (Model, tea.Cmd) {
	text := m.input.Value()
	m.HideCompletionPopup()

	var cmd tea.Cmd
	if m.onCommit != nil {
		cmd = m.onCommit(text)
	}

	if strings.TrimSpace(text) == "" {
		return m, cmd
	}

	list := m.hist
	if m.store != nil {
		stored, err := m.store.GetHistory(m.name)
		if err != nil {
			logging.Warn("load history failed", "field", m.name, "error", err)
		} else {
			list = stored
		}
	}

	list = history.Add(list, text, m.maxHistory)

	if m.store != nil {
		if err := m.store.SetHistory(m.name, list); err != nil {
			logging.Warn("save history failed", "field", m.name, "error", err)
		}
	}

	m.hist = list
	m.cursor.Reset()
	if m.completer != nil {
		m.completer.SetItems(list)
	}

	return m, cmd
}

// ClearHistory drops the field's history, both cached and stored.
func (m *Model) ClearHistory() error {
	m.hist = nil
	m.cursor.Reset()
	if m.completer != nil {
		m.completer.SetItems(nil)
	}
	if m.store != nil {
		return m.store.SetHistory(m.name, nil)
	}
	return nil
}

// recallPrev replaces the field text with the previous history entry.
// The text typed before navigation began is kept for restoration.
func (m *Model) recallPrev() {
	if !m.cursor.Navigating() {
		m.pending = m.input.Value()
	}
	if v, ok := m.cursor.Prev(m.hist); ok {
		m.input.SetValue(v)
		m.input.CursorEnd()
	}
}

// recallNext walks back toward newer entries, restoring the pending
// text once navigation runs off the newest entry.
func (m *Model) recallNext() {
	if !m.cursor.Navigating() {
		return
	}
	if v, ok := m.cursor.Next(m.hist); ok {
		m.input.SetValue(v)
	} else {
		m.input.SetValue(m.pending)
	}
	m.input.CursorEnd()
}

// View renders the field. The popup renders separately via its own
// View, anchored by the composition that owns both.
func (m Model) View() string {
	return m.input.View()
}
