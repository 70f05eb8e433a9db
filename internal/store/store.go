// Package store provides SQLite persistence for recall.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// SavedSearch is a named, persisted search specification. Fields mirror
// the search options the bar exposes; Pos orders the list for display.
type SavedSearch struct {
	Pos           int
	Name          string
	Find          string
	Replace       string
	Mode          string
	CaseSensitive bool
	DotAll        bool
	Wrap          bool
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	// Build connection string based on database type
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory databases, limit to 1 connection to avoid issues
	// with multiple connections getting different databases
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Enable WAL mode for file-based databases (not :memory:)
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		field TEXT NOT NULL,
		pos INTEGER NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (field, pos)
	);

	CREATE INDEX IF NOT EXISTS idx_history_field ON history(field);

	CREATE TABLE IF NOT EXISTS saved_searches (
		pos INTEGER NOT NULL,
		name TEXT PRIMARY KEY,
		find TEXT NOT NULL,
		replace TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL DEFAULT 'normal',
		case_sensitive INTEGER NOT NULL DEFAULT 0,
		dot_all INTEGER NOT NULL DEFAULT 0,
		wrap INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// GetHistory returns the stored history list for a field, most recent
// first. An absent field yields a nil slice and no error.
// Thread-safe: acquires read lock.
func (s *Store) GetHistory(field string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT value FROM history WHERE field = ? ORDER BY pos", field)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// SetHistory replaces the stored history list for a field.
// The whole list is rewritten in one transaction so readers never see a
// partially updated list.
// Thread-safe: acquires write lock.
func (s *Store) SetHistory(field string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM history WHERE field = ?", field); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO history (field, pos, value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err := stmt.Exec(field, i, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ClearHistory deletes all stored history for a field.
// Thread-safe: acquires write lock.
func (s *Store) ClearHistory(field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM history WHERE field = ?", field)
	return err
}

// Fields returns the names of all fields with stored history.
// Thread-safe: acquires read lock.
func (s *Store) Fields() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT DISTINCT field FROM history ORDER BY field")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// SavedSearches returns all saved searches in display order.
// Thread-safe: acquires read lock.
func (s *Store) SavedSearches() ([]SavedSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT pos, name, find, replace, mode, case_sensitive, dot_all, wrap
		FROM saved_searches
		ORDER BY pos
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []SavedSearch
	for rows.Next() {
		var ss SavedSearch
		var caseInt, dotInt, wrapInt int
		err := rows.Scan(&ss.Pos, &ss.Name, &ss.Find, &ss.Replace, &ss.Mode,
			&caseInt, &dotInt, &wrapInt)
		if err != nil {
			return nil, err
		}
		ss.CaseSensitive = caseInt != 0
		ss.DotAll = dotInt != 0
		ss.Wrap = wrapInt != 0
		searches = append(searches, ss)
	}
	return searches, rows.Err()
}

// PutSavedSearch inserts or updates a saved search by name. New searches
// are appended to the end of the display order.
// Thread-safe: acquires write lock.
func (s *Store) PutSavedSearch(ss SavedSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pos int
	err := s.db.QueryRow(
		"SELECT pos FROM saved_searches WHERE name = ?", ss.Name).Scan(&pos)
	switch {
	case err == sql.ErrNoRows:
		if err := s.db.QueryRow(
			"SELECT COALESCE(MAX(pos), -1) + 1 FROM saved_searches").Scan(&pos); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO saved_searches (pos, name, find, replace, mode, case_sensitive, dot_all, wrap)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			find = excluded.find,
			replace = excluded.replace,
			mode = excluded.mode,
			case_sensitive = excluded.case_sensitive,
			dot_all = excluded.dot_all,
			wrap = excluded.wrap
	`, pos, ss.Name, ss.Find, ss.Replace, ss.Mode,
		boolToInt(ss.CaseSensitive), boolToInt(ss.DotAll), boolToInt(ss.Wrap))
	return err
}

// DeleteSavedSearches removes saved searches by name and compacts the
// display order.
// Thread-safe: acquires write lock.
func (s *Store) DeleteSavedSearches(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(names) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range names {
		if _, err := tx.Exec("DELETE FROM saved_searches WHERE name = ?", name); err != nil {
			return err
		}
	}
	if err := compactSavedSearches(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// MoveSavedSearch shifts a saved search up (delta < 0) or down (delta > 0)
// in the display order, clamping at the ends.
// Thread-safe: acquires write lock.
func (s *Store) MoveSavedSearch(name string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var pos, count int
	if err := tx.QueryRow(
		"SELECT pos FROM saved_searches WHERE name = ?", name).Scan(&pos); err != nil {
		return err
	}
	if err := tx.QueryRow("SELECT COUNT(*) FROM saved_searches").Scan(&count); err != nil {
		return err
	}

	target := pos + delta
	if target < 0 {
		target = 0
	}
	if target > count-1 {
		target = count - 1
	}
	if target == pos {
		return nil
	}

	// saved_searches keys on name, not pos, so a three-step swap through a
	// sentinel position is safe.
	if _, err := tx.Exec("UPDATE saved_searches SET pos = -1 WHERE pos = ?", target); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE saved_searches SET pos = ? WHERE name = ?", target, name); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE saved_searches SET pos = ? WHERE pos = -1", pos); err != nil {
		return err
	}

	return tx.Commit()
}

// compactSavedSearches rewrites positions as 0..n-1 preserving order.
func compactSavedSearches(tx *sql.Tx) error {
	rows, err := tx.Query("SELECT name FROM saved_searches ORDER BY pos")
	if err != nil {
		return err
	}
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			rows.Close()
			return err
		}
		names = append(names, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i, n := range names {
		if _, err := tx.Exec("UPDATE saved_searches SET pos = ? WHERE name = ?", i, n); err != nil {
			return err
		}
	}
	return nil
}

// Setting returns a settings value and whether it was present.
// Thread-safe: acquires read lock.
func (s *Store) Setting(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var v string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetSetting stores a settings value, replacing any existing one.
// Thread-safe: acquires write lock.
func (s *Store) SetSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// boolToInt converts a bool to an int for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
