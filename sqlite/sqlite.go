// Package sqlite provides SQLite-based storage of entry history, so that
// feed items keep the date on which they first appeared across runs.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/rssfixer"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS sightings (
	id         TEXT PRIMARY KEY,
	feed_id    TEXT NOT NULL,
	url        TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	first_seen TEXT NOT NULL,
	last_seen  TEXT NOT NULL,
	UNIQUE (feed_id, url)
);

CREATE INDEX IF NOT EXISTS idx_sightings_feed_id ON sightings(feed_id);
`

// DB is a history database file.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. Nothing is opened until Open is called.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Path returns the database location.
func (db *DB) Path() string {
	return db.path
}

// Open connects to the database and creates the sightings table on first
// use. Failures are reported as EINTERNAL naming the path.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return rssfixer.Errorf(rssfixer.EINTERNAL, "unable to open history database %s: %v", db.path, err)
	}
	// One writer at a time; concurrent batch jobs queue on this connection.
	conn.SetMaxOpenConns(1)

	if err := setup(conn, db.path); err != nil {
		conn.Close()
		return rssfixer.Errorf(rssfixer.EINTERNAL, "unable to open history database %s: %v", db.path, err)
	}
	db.db = conn
	return nil
}

func setup(conn *sql.DB, path string) error {
	stmts := []string{"PRAGMA busy_timeout = 5000"}
	if path != MemoryPath {
		stmts = append(stmts, "PRAGMA journal_mode = WAL")
	}
	stmts = append(stmts, schema)
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the connection if it was opened.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that returns no rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}
