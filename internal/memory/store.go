// Package memory persists durable project notes — decisions,
// conventions, constraints — in SQLite with FTS5 full-text search.
// Notes are the one thing in a workspace that outlives individual
// features, so they get a real store instead of another markdown scan.
package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// openDB and timeNow are package-level for test injection.
var (
	openDB  = sql.Open
	timeNow = time.Now
)

// DBFile is the database filename under the workspace memory directory.
const DBFile = "memory.db"

// Note is one stored memory entry.
type Note struct {
	ID        int64  `json:"id"`
	Feature   string `json:"feature,omitempty"` // feature dir, e.g. "007-user-auth", or "" for project-wide
	Kind      string `json:"kind"`              // decision | convention | constraint | note
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// AddParams is the input for creating a note.
type AddParams struct {
	Feature string
	Kind    string
	Title   string
	Content string
}

var validKinds = map[string]bool{
	"decision":   true,
	"convention": true,
	"constraint": true,
	"note":       true,
}

// Store is the SQLite-backed note store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database under dir, applies pragmas, and
// migrates the schema.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("memory: create dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(dir, DBFile))
	if err != nil {
		return nil, fmt.Errorf("memory: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("memory: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("memory: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS notes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			feature    TEXT NOT NULL DEFAULT '',
			kind       TEXT NOT NULL,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			title, content,
			content='notes',
			content_rowid='id'
		);

		CREATE TRIGGER IF NOT EXISTS notes_ai AFTER INSERT ON notes BEGIN
			INSERT INTO notes_fts(rowid, title, content)
			VALUES (new.id, new.title, new.content);
		END;

		CREATE TRIGGER IF NOT EXISTS notes_ad AFTER DELETE ON notes BEGIN
			INSERT INTO notes_fts(notes_fts, rowid, title, content)
			VALUES ('delete', old.id, old.title, old.content);
		END;
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add stores a note and returns its id.
func (s *Store) Add(p AddParams) (int64, error) {
	if strings.TrimSpace(p.Title) == "" {
		return 0, fmt.Errorf("memory: title is required")
	}
	if strings.TrimSpace(p.Content) == "" {
		return 0, fmt.Errorf("memory: content is required")
	}
	kind := p.Kind
	if kind == "" {
		kind = "note"
	}
	if !validKinds[kind] {
		return 0, fmt.Errorf("memory: invalid kind %q (decision, convention, constraint, note)", kind)
	}

	res, err := s.db.Exec(
		`INSERT INTO notes (feature, kind, title, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.Feature, kind, p.Title, p.Content, timeNow().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("memory: insert note: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the newest notes, most recent first.
func (s *Store) Recent(limit int) ([]Note, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, feature, kind, title, content, created_at
		 FROM notes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("memory: list notes: %w", err)
	}
	return scanNotes(rows)
}

// ByFeature returns every note attached to a feature directory.
func (s *Store) ByFeature(feature string) ([]Note, error) {
	rows, err := s.db.Query(
		`SELECT id, feature, kind, title, content, created_at
		 FROM notes WHERE feature = ? ORDER BY id`, feature)
	if err != nil {
		return nil, fmt.Errorf("memory: notes for %s: %w", feature, err)
	}
	return scanNotes(rows)
}

// Search runs an FTS5 match over titles and contents. An empty query is
// an empty result, not an FTS5 syntax error.
func (s *Store) Search(query string, limit int) ([]Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	// Quote the user string so FTS5 operators in it are literal text.
	quoted := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`

	rows, err := s.db.Query(
		`SELECT n.id, n.feature, n.kind, n.title, n.content, n.created_at
		 FROM notes_fts f JOIN notes n ON n.id = f.rowid
		 WHERE notes_fts MATCH ? ORDER BY rank LIMIT ?`, quoted, limit)
	if err != nil {
		return nil, fmt.Errorf("memory: search: %w", err)
	}
	return scanNotes(rows)
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Feature, &n.Kind, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("memory: scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
