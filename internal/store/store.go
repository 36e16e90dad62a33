// Package store persists learner progress in a local SQLite database:
// state snapshots (latest wins) and an append-only award event log,
// both managed through ent. A snapshot that fails shape validation on
// load is treated as absent rather than fatal.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/edfolio/questline/ent"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// sqlitePragmas tunes the database for a single local user: WAL keeps
// readers unblocked during writes, NORMAL sync is safe enough for
// progress data that also lives in the event log.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
	"PRAGMA synchronous = NORMAL",
}

// Store owns the database handle and hands out repositories over it.
type Store struct {
	db     *sql.DB
	client *ent.Client
	seq    *sequenceCounter
}

// Open connects to the SQLite database at dsn, applies pragmas, runs
// auto-migration, and prepares the shared sequence counter.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for _, pragma := range sqlitePragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	client := ent.NewClient(ent.Driver(entsql.OpenDB(dialect.SQLite, db)))
	if err := client.Schema.Create(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("init sequence counter: %w", err)
	}

	return &Store{db: db, client: client, seq: seq}, nil
}

// StateRepo returns the snapshot-backed state repository.
func (s *Store) StateRepo() StateRepo {
	return &stateRepo{client: s.client, seq: s.seq}
}

// EventRepo returns the award event repository.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{client: s.client, seq: s.seq}
}

// Client exposes the ent client for queries the repos don't cover.
func (s *Store) Client() *ent.Client {
	return s.client
}

// DB exposes the raw handle for direct SQL.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.client.Close()
}

// Wipe deletes all stored snapshots and award events. Equivalent to
// removing the stored key in the original site: the next Load returns
// nothing and defaults apply.
func (s *Store) Wipe(ctx context.Context) error {
	if _, err := s.client.Snapshot.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("wipe snapshots: %w", err)
	}
	if _, err := s.client.AwardEvent.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("wipe award events: %w", err)
	}
	return nil
}

// DefaultDBPath resolves where the database lives: the QUESTLINE_DB
// environment variable if set, otherwise questline/questline.db under
// the XDG data directory (falling back to ~/.local/share).
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUESTLINE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "questline", "questline.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
