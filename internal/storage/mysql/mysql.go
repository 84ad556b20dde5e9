// Package mysql opens a MySQL-backed student store using
// go-sql-driver/mysql. The students table is expected to exist already.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/aanand-mishra/studentdb-api/internal/config"
	"github.com/aanand-mishra/studentdb-api/internal/storage/sqlstore"
)

const defaultPort = 3306

// DSN builds the driver data source name from the database settings.
func DSN(cfg config.Database) string {
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Name

	return mc.FormatDSN()
}

// New opens the pool and verifies the server is reachable.
func New(ctx context.Context, cfg config.Database) (*sqlstore.Store, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("mysql.New: open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql.New: ping: %w", err)
	}

	return sqlstore.New(db, sqlstore.MySQL), nil
}
