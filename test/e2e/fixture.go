package e2e

import (
	"os"
	"path/filepath"

	"github.com/abelbrown/recall/internal/store"
)

// seedFixtureDB pre-populates search history in a fresh home directory
// so completion has something to offer on first keystroke.
func seedFixtureDB(homeDir string) error {
	dataDir := filepath.Join(homeDir, ".recall")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	dbPath := filepath.Join(dataDir, "recall.db")
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	history := []string{"history lesson", "popup", "regex mode"}
	if err := st.SetHistory("search", history); err != nil {
		return err
	}
	return st.PutSavedSearch(store.SavedSearch{
		Name: "fixture search",
		Find: "document",
		Mode: "normal",
		Wrap: true,
	})
}
