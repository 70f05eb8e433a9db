package ui

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/recall/internal/store"
	"github.com/abelbrown/recall/internal/ui/bar"
	"github.com/abelbrown/recall/internal/ui/popup"
)

var testLines = []string{
	"the quick brown fox",
	"jumps over the lazy dog",
	"pack my box with five dozen liquor jugs",
	"the five boxing wizards jump quickly",
}

func newTestApp(t *testing.T) App {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "recall.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	p := popup.New()
	b := bar.New(bar.Options{
		Completer: p,
		History:   s,
		Settings:  s,
		Saved:     s,
	})
	return NewApp(testLines, b, p)
}

// sendKeys routes key messages through the app, executing any produced
// commands and feeding their messages back, the way the runtime would.
func sendKeys(t *testing.T, a App, keys ...tea.KeyMsg) App {
	t.Helper()
	for _, k := range keys {
		model, cmd := a.Update(k)
		a = model.(App)
		for cmd != nil {
			msg := cmd()
			if msg == nil {
				break
			}
			// Cursor blink commands re-schedule themselves forever;
			// following them would never terminate.
			if _, ok := msg.(cursor.BlinkMsg); ok {
				break
			}
			model, cmd = a.Update(msg)
			a = model.(App)
		}
	}
	return a
}

func typeKeys(text string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func TestSlashEntersSearchMode(t *testing.T) {
	a := newTestApp(t)

	a = sendKeys(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !a.Searching() {
		t.Error("slash should focus the search bar")
	}

	a = sendKeys(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.Searching() {
		t.Error("esc should leave search mode")
	}
}

func TestSearchFindsMatches(t *testing.T) {
	a := newTestApp(t)

	keys := append([]tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'/'}}}, typeKeys("five")...)
	keys = append(keys, tea.KeyMsg{Type: tea.KeyEnter})
	a = sendKeys(t, a, keys...)

	if got := a.Matches(); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("matches = %v, want [2 3]", got)
	}
	if a.CurrentMatch() != 0 {
		t.Errorf("current = %d, want 0", a.CurrentMatch())
	}
	if a.Searching() {
		t.Error("commit should leave search mode")
	}
}

func TestSearchIsCaseInsensitiveByDefault(t *testing.T) {
	a := newTestApp(t)

	keys := append([]tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'/'}}}, typeKeys("THE QUICK")...)
	keys = append(keys, tea.KeyMsg{Type: tea.KeyEnter})
	a = sendKeys(t, a, keys...)

	if len(a.Matches()) != 1 {
		t.Errorf("matches = %v", a.Matches())
	}
}

func TestMatchNavigationWraps(t *testing.T) {
	a := newTestApp(t)

	keys := append([]tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'/'}}}, typeKeys("the")...)
	keys = append(keys, tea.KeyMsg{Type: tea.KeyEnter})
	a = sendKeys(t, a, keys...)

	total := len(a.Matches())
	if total < 2 {
		t.Fatalf("need at least 2 matches, got %d", total)
	}

	a = sendKeys(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if a.CurrentMatch() != 1 {
		t.Errorf("after n: %d", a.CurrentMatch())
	}

	a = sendKeys(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})
	if a.CurrentMatch() != 0 {
		t.Errorf("after N: %d", a.CurrentMatch())
	}

	// N from the first match wraps to the last.
	a = sendKeys(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})
	if a.CurrentMatch() != total-1 {
		t.Errorf("wrap: %d, want %d", a.CurrentMatch(), total-1)
	}
}

func TestNoMatches(t *testing.T) {
	a := newTestApp(t)

	keys := append([]tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'/'}}}, typeKeys("zzzzz")...)
	keys = append(keys, tea.KeyMsg{Type: tea.KeyEnter})
	a = sendKeys(t, a, keys...)

	if len(a.Matches()) != 0 {
		t.Errorf("matches = %v", a.Matches())
	}
	if a.CurrentMatch() != -1 {
		t.Errorf("current = %d, want -1", a.CurrentMatch())
	}

	// n with no matches is a no-op.
	a = sendKeys(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if a.CurrentMatch() != -1 {
		t.Errorf("current = %d after n", a.CurrentMatch())
	}
}

func TestSecondSearchUsesHistoryCompletion(t *testing.T) {
	a := newTestApp(t)

	// First search seeds history.
	keys := append([]tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'/'}}}, typeKeys("five")...)
	keys = append(keys, tea.KeyMsg{Type: tea.KeyEnter})
	a = sendKeys(t, a, keys...)

	// Start a second search and type a prefix; popup should offer the
	// previous query, and tab twice applies it.
	keys = append([]tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'/'}}}, typeKeys("fi")...)
	keys = append(keys,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	a = sendKeys(t, a, keys...)

	if len(a.Matches()) != 2 {
		t.Errorf("completed search should find 2 matches, got %v", a.Matches())
	}
}

func TestViewRendersAfterResize(t *testing.T) {
	a := newTestApp(t)

	if a.View() != "Loading..." {
		t.Error("view before resize should be the loading placeholder")
	}

	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	a = model.(App)

	view := a.View()
	if view == "" || view == "Loading..." {
		t.Error("view after resize should render the document")
	}
}
