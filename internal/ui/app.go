package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/recall/internal/search"
	"github.com/abelbrown/recall/internal/ui/bar"
	"github.com/abelbrown/recall/internal/ui/popup"
)

// App is the root Bubble Tea model: a line-oriented document with a
// search bar along the bottom. The bar's completion popup is owned
// here and rendered anchored above the bar.
type App struct {
	bar   bar.Model
	popup *popup.Popup

	lines   []string
	offset  int // first visible line
	spec    search.Spec
	matches []int // indexes into lines
	current int   // index into matches, -1 = none
	err     error

	width     int
	height    int
	ready     bool
	searching bool // bar has focus
}

// NewApp creates the app over a document and a pre-built search bar.
func NewApp(lines []string, searchBar bar.Model, completion *popup.Popup) App {
	return App{
		bar:     searchBar,
		popup:   completion,
		lines:   lines,
		current: -1,
	}
}

// Init does nothing; the document is given at construction.
func (a App) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.bar.SetWidth(msg.Width)
		a.popup.SetWidth(msg.Width - 4)
		return a, nil

	case bar.SearchRequested:
		a.searching = false
		a.bar.Blur()
		a.runSearch(msg.Spec)
		return a, nil
	}

	// Other messages (cursor blink and friends) belong to the bar while
	// it has focus.
	if a.searching {
		var cmd tea.Cmd
		a.bar, cmd = a.bar.Update(msg)
		return a, cmd
	}

	return a, nil
}

// handleKeyMsg processes keyboard input. While the bar has focus all
// keys flow to it; otherwise keys navigate the document and matches.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		if msg.String() == "esc" && !a.popup.Visible() {
			a.searching = false
			a.bar.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.bar, cmd = a.bar.Update(msg)
		return a, cmd
	}

	if a.err != nil {
		a.err = nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "/":
		a.searching = true
		return a, a.bar.Focus()

	case "n":
		a.advanceMatch(false)
		return a, nil

	case "N":
		a.advanceMatch(true)
		return a, nil

	case "j", "down":
		if a.offset < len(a.lines)-1 {
			a.offset++
		}
		return a, nil

	case "k", "up":
		if a.offset > 0 {
			a.offset--
		}
		return a, nil

	case "g", "home":
		a.offset = 0
		return a, nil

	case "G", "end":
		if len(a.lines) > 0 {
			a.offset = len(a.lines) - 1
		}
		return a, nil
	}

	return a, nil
}

// runSearch compiles the spec and collects matching line indexes. The
// first selected match honors the spec's direction.
func (a *App) runSearch(spec search.Spec) {
	a.spec = spec
	a.matches = nil
	a.current = -1

	re, err := spec.Compile()
	if err != nil {
		a.err = err
		return
	}

	for i, line := range a.lines {
		if re.MatchString(line) {
			a.matches = append(a.matches, i)
		}
	}

	if next, ok := spec.NextMatch(-1, len(a.matches)); ok {
		a.current = next
		a.offset = a.matches[next]
	}
}

// advanceMatch moves to the next match in the spec's direction, or the
// opposite direction when reversed.
func (a *App) advanceMatch(reverse bool) {
	if len(a.matches) == 0 {
		return
	}

	spec := a.spec
	if reverse {
		if spec.Direction == search.DirectionUp {
			spec.Direction = search.DirectionDown
		} else {
			spec.Direction = search.DirectionUp
		}
	}

	if next, ok := spec.NextMatch(a.current, len(a.matches)); ok {
		a.current = next
		a.offset = a.matches[next]
	}
}

// View renders the document, status bar, search bar, and popup.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	popupView := a.popup.View()
	barView := a.bar.View()

	// Bar takes 2 lines, status 1; popup floats in the remaining space.
	contentHeight := a.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	doc := RenderLines(a.lines, a.matches, a.currentLine(), a.offset, a.width, contentHeight)
	status := RenderStatusBar(a.current, len(a.matches), a.searching, a.err, a.width)

	out := doc + "\n" + status + "\n" + barView
	if popupView != "" {
		out += "\n" + popupView
	}
	return out
}

// currentLine returns the line index of the selected match, or -1.
func (a App) currentLine() int {
	if a.current < 0 || a.current >= len(a.matches) {
		return -1
	}
	return a.matches[a.current]
}

// Matches returns the matching line indexes (for testing).
func (a App) Matches() []int {
	return a.matches
}

// CurrentMatch returns the selected match index (for testing).
func (a App) CurrentMatch() int {
	return a.current
}

// Searching reports whether the search bar has focus (for testing).
func (a App) Searching() bool {
	return a.searching
}

// Err returns the last search error (for testing).
func (a App) Err() error {
	return a.err
}
