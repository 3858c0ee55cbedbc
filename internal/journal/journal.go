// Package journal persists a record of every relocation so past batches can
// be reviewed after the tool exits. It is an audit trail, not an undo
// mechanism.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one relocated pair.
type Entry struct {
	ID          int64
	MovedAt     time.Time
	VideoPath   string
	ImagePath   string
	Destination string
	Session     string
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS moves (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        moved_at TEXT NOT NULL,
        video_path TEXT NOT NULL,
        image_path TEXT NOT NULL,
        destination TEXT NOT NULL,
        session TEXT NOT NULL
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one relocation.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO moves (moved_at, video_path, image_path, destination, session)
         VALUES (?, ?, ?, ?, ?)`,
		e.MovedAt.UTC().Format(time.RFC3339Nano),
		e.VideoPath,
		e.ImagePath,
		e.Destination,
		e.Session,
	)
	if err != nil {
		return fmt.Errorf("record move: %w", err)
	}
	return nil
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, moved_at, video_path, image_path, destination, session
         FROM moves ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var movedAt string
		if err := rows.Scan(&e.ID, &movedAt, &e.VideoPath, &e.ImagePath, &e.Destination, &e.Session); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, movedAt)
		if err != nil {
			return nil, fmt.Errorf("parse moved_at %q: %w", movedAt, err)
		}
		e.MovedAt = ts
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
