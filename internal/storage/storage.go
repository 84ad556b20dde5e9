// Package storage defines the Storage interface that every database
// backend implements. Handlers depend only on this interface, so the
// engine is chosen once in main and tests can run against SQLite.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/studentdb-api/internal/types"
)

// ErrNotFound is returned by the single-row lookups when no row matches.
var ErrNotFound = errors.New("student not found")

// Storage is the database contract.
//
// Every method runs exactly one SQL statement with all values bound as
// parameters.
type Storage interface {
	// ListStudents returns every student, most recently created first.
	// The slice is empty, never nil, when the table is empty.
	ListStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentByID returns ErrNotFound when no row has the given id.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudentBySRN matches after trimming surrounding whitespace and
	// case-folding both the stored and the given value. Returns
	// ErrNotFound when nothing matches.
	GetStudentBySRN(ctx context.Context, srn string) (types.Student, error)

	// CreateStudent inserts a row and returns the id the database assigned.
	CreateStudent(ctx context.Context, student types.StudentRequest) (int64, error)

	// UpdateStudentByID overwrites every field of the row. Updating an id
	// that does not exist is not an error.
	UpdateStudentByID(ctx context.Context, id int64, student types.StudentRequest) error

	// DeleteStudentByID removes the row. Deleting an id that does not
	// exist is not an error.
	DeleteStudentByID(ctx context.Context, id int64) error

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection pool.
	Close() error
}
