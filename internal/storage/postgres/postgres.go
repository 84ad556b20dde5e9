// Package postgres opens a PostgreSQL-backed student store using lib/pq.
// The students table is expected to exist already.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/aanand-mishra/studentdb-api/internal/config"
	"github.com/aanand-mishra/studentdb-api/internal/storage/sqlstore"
)

const defaultPort = 5432

// DSN builds a keyword/value connection string. Values are single-quoted
// so passwords containing spaces or quotes survive.
func DSN(cfg config.Database) string {
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	pairs := []string{
		"host=" + quote(cfg.Host),
		fmt.Sprintf("port=%d", port),
		"user=" + quote(cfg.User),
		"password=" + quote(cfg.Password),
		"dbname=" + quote(cfg.Name),
		"sslmode=" + quote(cfg.SSLMode),
	}

	return strings.Join(pairs, " ")
}

func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// New opens the pool and verifies the server is reachable.
func New(ctx context.Context, cfg config.Database) (*sqlstore.Store, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return sqlstore.New(db, sqlstore.Postgres), nil
}
