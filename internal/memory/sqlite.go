package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS translations (
	source_text TEXT NOT NULL,
	target_lang TEXT NOT NULL,
	translation TEXT NOT NULL,
	PRIMARY KEY (source_text, target_lang)
)`

// SQLiteStore persists the translation memory on disk so repeated runs over
// the same tables reuse earlier API results.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (creating if needed) the translation memory database at
// dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation memory: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure translation memory: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize translation memory: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get looks up a stored translation.
func (s *SQLiteStore) Get(sourceText, targetLang string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var translation string
	err := s.db.QueryRow(
		`SELECT translation FROM translations WHERE source_text = ? AND target_lang = ?`,
		sourceText, targetLang,
	).Scan(&translation)
	if err != nil {
		return "", false
	}
	return translation, true
}

// Put records a translation, replacing any earlier value for the pair.
func (s *SQLiteStore) Put(sourceText, targetLang, translation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO translations (source_text, target_lang, translation) VALUES (?, ?, ?)
		 ON CONFLICT(source_text, target_lang) DO UPDATE SET translation = excluded.translation`,
		sourceText, targetLang, translation,
	)
	if err != nil {
		return fmt.Errorf("failed to store translation: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// DefaultPath returns the translation memory location under the user's
// state directory, next to where the GUI keeps its other data.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".csvtranslator", "memory.db")
	}
	return filepath.Join(home, ".local", "state", "csvtranslator", "memory.db")
}
