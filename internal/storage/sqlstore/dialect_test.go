package sqlstore

import (
	"strings"
	"testing"
)

func TestDialect_Rebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{
			name:    "mysql keeps question marks",
			dialect: MySQL,
			query:   "DELETE FROM students WHERE id = ?",
			want:    "DELETE FROM students WHERE id = ?",
		},
		{
			name:    "postgres numbers placeholders in order",
			dialect: Postgres,
			query:   "UPDATE students SET srn = ?, name = ? WHERE id = ?",
			want:    "UPDATE students SET srn = $1, name = $2 WHERE id = $3",
		},
		{
			name:    "no placeholders",
			dialect: Postgres,
			query:   "SELECT id FROM students",
			want:    "SELECT id FROM students",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.Rebind(tt.query); got != tt.want {
				t.Fatalf("Rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildQueries_Postgres(t *testing.T) {
	q := buildQueries(Postgres)

	if !strings.HasSuffix(q.insert, "VALUES ($1, $2, $3, $4, $5) RETURNING id") {
		t.Fatalf("insert = %q", q.insert)
	}
	if !strings.HasSuffix(q.update, "WHERE id = $6") {
		t.Fatalf("update = %q", q.update)
	}
	if strings.Contains(q.bySRN, "?") {
		t.Fatalf("bySRN still has ? placeholder: %q", q.bySRN)
	}
}

func TestBuildQueries_MySQL(t *testing.T) {
	q := buildQueries(MySQL)

	if strings.Contains(q.insert, "RETURNING") {
		t.Fatalf("mysql insert must not use RETURNING: %q", q.insert)
	}
	if !strings.HasSuffix(q.list, "ORDER BY id DESC") {
		t.Fatalf("list = %q", q.list)
	}
	if !strings.Contains(q.bySRN, "TRIM(LOWER(srn)) = LOWER(?)") {
		t.Fatalf("bySRN = %q", q.bySRN)
	}
}
