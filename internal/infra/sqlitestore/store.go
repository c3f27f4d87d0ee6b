// Package sqlitestore provides a SQLite implementation of SnapshotRepository.
// Tickets and comments are kept in ordinary tables so the data can be
// inspected with any SQLite client; every Save rewrites them in one
// transaction.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/runoshun/ironjira/internal/domain"
)

// Ensure Store implements domain.SnapshotRepository.
var _ domain.SnapshotRepository = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tickets (
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  status TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS comments (
  ticket_id INTEGER NOT NULL REFERENCES tickets(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  body TEXT NOT NULL,
  PRIMARY KEY (ticket_id, position)
);
`

const metaCurrentID = "current_id"

// Store implements domain.SnapshotRepository using a SQLite database file.
type Store struct {
	clock domain.Clock
	path  string
}

// New creates a new Store for the given database path.
// The database does not need to exist; it will be created on first Save.
func New(path string, clock domain.Clock) *Store {
	return &Store{clock: clock, path: path}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", s.path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// Load reads every ticket from the database.
// A missing database file yields an empty store.
func (s *Store) Load() (*domain.TicketStore, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return domain.NewTicketStoreWithClock(s.clock), nil
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	snap, err := readSnapshot(db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	store, err := domain.RestoreTicketStore(snap, s.clock)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return store, nil
}

func readSnapshot(db *sql.DB) (domain.Snapshot, error) {
	snap := domain.Snapshot{Data: make(map[domain.TicketID]domain.TicketRecord)}

	var raw string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaCurrentID).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return snap, fmt.Errorf("read meta: %w", err)
	default:
		current, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return snap, fmt.Errorf("%w: current_id %q: %w", domain.ErrCorruptSnapshot, raw, err)
		}
		snap.CurrentID = domain.TicketID(current)
	}

	rows, err := db.Query(`SELECT id, title, description, status, created_at, updated_at FROM tickets`)
	if err != nil {
		return snap, fmt.Errorf("query tickets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			rec                  domain.TicketRecord
			status               string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &status, &createdAt, &updatedAt); err != nil {
			return snap, fmt.Errorf("scan ticket: %w", err)
		}
		rec.Status = domain.Status(status)
		if rec.CreatedAt, err = parseTime(createdAt); err != nil {
			return snap, err
		}
		if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return snap, err
		}
		rec.Comments = []string{}
		snap.Data[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate tickets: %w", err)
	}

	crows, err := db.Query(`SELECT ticket_id, body FROM comments ORDER BY ticket_id, position`)
	if err != nil {
		return snap, fmt.Errorf("query comments: %w", err)
	}
	defer func() { _ = crows.Close() }()

	for crows.Next() {
		var (
			id   domain.TicketID
			body string
		)
		if err := crows.Scan(&id, &body); err != nil {
			return snap, fmt.Errorf("scan comment: %w", err)
		}
		rec, ok := snap.Data[id]
		if !ok {
			return snap, fmt.Errorf("%w: comment for unknown ticket %d", domain.ErrCorruptSnapshot, id)
		}
		rec.Comments = append(rec.Comments, body)
		snap.Data[id] = rec
	}
	if err := crows.Err(); err != nil {
		return snap, fmt.Errorf("iterate comments: %w", err)
	}

	return snap, nil
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %w", domain.ErrCorruptSnapshot, raw, err)
	}
	return t, nil
}

// Save replaces the database contents with the complete state of store.
func (s *Store) Save(store *domain.TicketStore) (err error) {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = writeSnapshot(tx, store.Snapshot()); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func writeSnapshot(tx *sql.Tx, snap domain.Snapshot) error {
	if _, err := tx.Exec(`DELETE FROM comments`); err != nil {
		return fmt.Errorf("clear comments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tickets`); err != nil {
		return fmt.Errorf("clear tickets: %w", err)
	}

	_, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaCurrentID, strconv.FormatUint(uint64(snap.CurrentID), 10),
	)
	if err != nil {
		return fmt.Errorf("write meta: %w", err)
	}

	ticketStmt, err := tx.Prepare(`INSERT INTO tickets (id, title, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare ticket insert: %w", err)
	}
	defer func() { _ = ticketStmt.Close() }()

	commentStmt, err := tx.Prepare(`INSERT INTO comments (ticket_id, position, body) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare comment insert: %w", err)
	}
	defer func() { _ = commentStmt.Close() }()

	for id, rec := range snap.Data {
		_, err := ticketStmt.Exec(
			int64(id), rec.Title, rec.Description, string(rec.Status),
			rec.CreatedAt.UTC().Format(time.RFC3339Nano),
			rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert ticket %d: %w", id, err)
		}
		for pos, body := range rec.Comments {
			if _, err := commentStmt.Exec(int64(id), pos, body); err != nil {
				return fmt.Errorf("insert comment %d/%d: %w", id, pos, err)
			}
		}
	}
	return nil
}
