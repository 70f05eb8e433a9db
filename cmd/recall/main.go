// Command recall is a demo of the history-backed completing search bar:
// a small document viewer with persistent search history, saved
// searches, and a completion popup.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/recall/internal/config"
	"github.com/abelbrown/recall/internal/logging"
	"github.com/abelbrown/recall/internal/store"
	"github.com/abelbrown/recall/internal/ui"
	"github.com/abelbrown/recall/internal/ui/bar"
	"github.com/abelbrown/recall/internal/ui/popup"
)

// sampleDocument is the built-in corpus the demo searches over. A file
// argument replaces it.
const sampleDocument = `recall is a completing text input for terminal applications.
Every value you commit is remembered, most recent first.
Committing the same value twice moves it to the front of the list.
History is bounded: the oldest entries fall off past the limit.
Blank input is never recorded.
Press / to search this document.
Type a few characters and the popup suggests previous searches.
Tab highlights a suggestion; tab again applies it.
Enter runs the search and records it in history.
Use n and N to walk matches forward and backward.
Toggle regex mode with alt+m and case sensitivity with alt+c.
Wrap and direction come from the same search bar: alt+w and alt+d.
Saved searches persist in the same local database.
Quit with q and your history will be waiting next time.`

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "recall: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		logging.Error("load config failed", "error", err)
		fmt.Fprintf(os.Stderr, "recall: load config: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.ResolveDBPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "recall: create data directory: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		logging.Error("open store failed", "path", dbPath, "error", err)
		fmt.Fprintf(os.Stderr, "recall: open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()
	logging.Info("store opened", "path", dbPath)

	lines := strings.Split(sampleDocument, "\n")
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "recall: %v\n", err)
			os.Exit(1)
		}
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	}

	completion := popup.New()
	completion.SetMaxRows(cfg.UI.PopupMaxRows)

	searchBar := bar.New(bar.Options{
		Completer:    completion,
		History:      st,
		Settings:     st,
		Saved:        st,
		MaxHistory:   cfg.History.MaxEntries,
		DisablePopup: cfg.UI.PopupDisabled,
	})

	app := ui.NewApp(lines, searchBar, completion)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error("program failed", "error", err)
		fmt.Fprintf(os.Stderr, "recall: %v\n", err)
		os.Exit(1)
	}
}
