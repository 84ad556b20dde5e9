// Package sqlite opens a SQLite-backed student store.
//
// SQLite keeps everything in one file with no server process, which makes
// it the engine for local development and for tests. Unlike the server
// engines, the file has no external owner of its schema, so New creates
// the students table when it is missing.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/studentdb-api/internal/storage/sqlstore"
)

// Writers wait this long for a lock instead of failing with SQLITE_BUSY.
const busyTimeoutMS = 5000

const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		srn   TEXT    NOT NULL UNIQUE,
		name  TEXT    NOT NULL,
		age   INTEGER NOT NULL DEFAULT 0,
		dept  TEXT    NOT NULL DEFAULT '',
		email TEXT    NOT NULL DEFAULT ''
	)
`

// New opens the database file at path and bootstraps the schema.
//
// AUTOINCREMENT keeps ids strictly increasing even after the highest row
// is deleted.
func New(ctx context.Context, path string) (*sqlstore.Store, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn = fmt.Sprintf("%s?_busy_timeout=%d", path, busyTimeoutMS)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return sqlstore.New(db, sqlstore.SQLite), nil
}
