// Package types holds the data structures shared by the HTTP and storage
// layers. Keeping them in one place prevents import cycles between
// handlers and storage backends.
package types

// Student is a row of the students table as returned to API clients.
//
// ID is assigned by the database on insert and never changes afterwards.
type Student struct {
	ID    int64  `json:"id"`
	SRN   string `json:"srn"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Dept  string `json:"dept"`
	Email string `json:"email"`
}

// StudentRequest is the body accepted by the create and update endpoints.
//
// There is no ID field: on create the database assigns it, on update it
// comes from the URL. Any "id" sent in the body is ignored by the decoder.
//
// The validate tags are checked with go-playground/validator before the
// payload reaches storage.
type StudentRequest struct {
	SRN   string `json:"srn"   validate:"required"`
	Name  string `json:"name"  validate:"required"`
	Age   int    `json:"age"   validate:"gte=0"`
	Dept  string `json:"dept"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateResponse is returned by POST /api/students.
type CreateResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// SuccessResponse is returned by update and delete.
type SuccessResponse struct {
	Success bool `json:"success"`
}
