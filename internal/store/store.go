// Package store handles SQLite persistence.
package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	_ "modernc.org/sqlite" // SQLite driver.
)

var (
	ErrPoemNotFound = errors.New("poem not found")
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Store wraps SQLite access for the poem catalog, users and their submissions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps transactions from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS poems (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			poet TEXT NOT NULL,
			text TEXT NOT NULL,
			authoritative TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS poem_scansions (
			poem_id INTEGER NOT NULL,
			label TEXT NOT NULL,
			about TEXT NOT NULL,
			preferred INTEGER NOT NULL,
			scansion TEXT NOT NULL,
			PRIMARY KEY (poem_id, label)
		);`,
		`CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			poem_id INTEGER NOT NULL,
			points INTEGER NOT NULL,
			percentage INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS corrections (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			poem_id INTEGER,
			poem_text TEXT NOT NULL,
			scansion TEXT NOT NULL,
			diffs TEXT NOT NULL,
			percentage INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_poems_poet ON poems(poet);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_user ON submissions(user_name, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_corrections_poem ON corrections(poem_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// timeLayout has fixed-width fractions so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

func rollback(tx *sql.Tx) {
	if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
		// Best-effort rollback.
		_ = rerr
	}
}

func closeRows(rows *sql.Rows) {
	if cerr := rows.Close(); cerr != nil {
		// Best-effort rows close.
		_ = cerr
	}
}

// builder is shared by every dynamic query; SQLite takes "?" placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
