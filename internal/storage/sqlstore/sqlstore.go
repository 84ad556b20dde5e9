// Package sqlstore implements storage.Storage on top of database/sql.
//
// The engine packages (mysql, postgres, sqlite) open the *sql.DB and hand
// it to New together with their Dialect. Every operation is exactly one
// parameterized statement; values are never interpolated into SQL text.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aanand-mishra/studentdb-api/internal/storage"
	"github.com/aanand-mishra/studentdb-api/internal/types"
)

// Nullable columns are coalesced so tables created outside this service
// (without NOT NULL constraints) still scan into plain Go values.
const studentColumns = `id, COALESCE(srn, ''), COALESCE(name, ''), COALESCE(age, 0),
	COALESCE(dept, ''), COALESCE(email, '')`

type queries struct {
	list   string
	byID   string
	bySRN  string
	insert string
	update string
	delete string
}

func buildQueries(d Dialect) queries {
	insert := "INSERT INTO students (srn, name, age, dept, email) VALUES (?, ?, ?, ?, ?)"
	if d.ReturningID {
		insert += " RETURNING id"
	}

	return queries{
		list:   "SELECT " + studentColumns + " FROM students ORDER BY id DESC",
		byID:   d.Rebind("SELECT " + studentColumns + " FROM students WHERE id = ? LIMIT 1"),
		bySRN:  d.Rebind("SELECT " + studentColumns + " FROM students WHERE TRIM(LOWER(srn)) = LOWER(?) LIMIT 1"),
		insert: d.Rebind(insert),
		update: d.Rebind("UPDATE students SET srn = ?, name = ?, age = ?, dept = ?, email = ? WHERE id = ?"),
		delete: d.Rebind("DELETE FROM students WHERE id = ?"),
	}
}

// Store is the database/sql implementation of storage.Storage.
// A single *sql.DB is a pool that is safe for concurrent use.
type Store struct {
	db      *sql.DB
	dialect Dialect
	q       queries
}

var _ storage.Storage = (*Store)(nil)

// New wraps an open pool. The caller keeps ownership until Close is called.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		q:       buildQueries(dialect),
	}
}

// Dialect reports which engine the store talks to.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var st types.Student
	err := row.Scan(&st.ID, &st.SRN, &st.Name, &st.Age, &st.Dept, &st.Email)
	return st, err
}

func (s *Store) ListStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := s.db.QueryContext(ctx, s.q.list)
	if err != nil {
		return nil, fmt.Errorf("ListStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("ListStudents: scan row: %w", err)
		}
		students = append(students, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudents: rows iteration: %w", err)
	}

	return students, nil
}

func (s *Store) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	st, err := scanStudent(s.db.QueryRowContext(ctx, s.q.byID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return st, nil
}

func (s *Store) GetStudentBySRN(ctx context.Context, srn string) (types.Student, error) {
	st, err := scanStudent(s.db.QueryRowContext(ctx, s.q.bySRN, strings.TrimSpace(srn)))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentBySRN: scan: %w", err)
	}

	return st, nil
}

func (s *Store) CreateStudent(ctx context.Context, st types.StudentRequest) (int64, error) {
	args := []any{st.SRN, st.Name, st.Age, st.Dept, st.Email}

	if s.dialect.ReturningID {
		var id int64
		if err := s.db.QueryRowContext(ctx, s.q.insert, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("CreateStudent: insert returning: %w", err)
		}
		return id, nil
	}

	result, err := s.db.ExecContext(ctx, s.q.insert, args...)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return id, nil
}

func (s *Store) UpdateStudentByID(ctx context.Context, id int64, st types.StudentRequest) error {
	// Argument order follows the placeholders: srn, name, age, dept, email, id.
	_, err := s.db.ExecContext(ctx, s.q.update, st.SRN, st.Name, st.Age, st.Dept, st.Email, id)
	if err != nil {
		return fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	return nil
}

func (s *Store) DeleteStudentByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.q.delete, id); err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: ping: %w", s.dialect.Name, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
