package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect describes how an engine differs from the MySQL/SQLite baseline
// the queries are written in.
type Dialect struct {
	// Name is used in log lines and error messages.
	Name string

	// DollarPlaceholders rewrites ? placeholders to $1, $2, ... (PostgreSQL).
	DollarPlaceholders bool

	// ReturningID makes CreateStudent read the new id from
	// INSERT ... RETURNING id instead of sql.Result.LastInsertId, which
	// lib/pq does not support.
	ReturningID bool
}

var (
	MySQL    = Dialect{Name: "mysql"}
	SQLite   = Dialect{Name: "sqlite3"}
	Postgres = Dialect{Name: "postgres", DollarPlaceholders: true, ReturningID: true}
)

// Rebind returns query with placeholders in the dialect's style.
// Queries in this package never contain a literal '?' outside placeholders.
func (d Dialect) Rebind(query string) string {
	if !d.DollarPlaceholders {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}

	return b.String()
}
