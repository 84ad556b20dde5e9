// Package student contains the HTTP handlers for the Student resource.
//
// Each handler is built by a factory that receives its dependencies (the
// storage and a logger) once at startup and returns the http.HandlerFunc
// the router calls on every request:
//
//	r.Get("/api/students/{id}", student.GetByID(store, log))
//
// Read failures answer 500 and missing rows 404. Every write failure,
// whatever its cause, answers 400.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aanand-mishra/studentdb-api/internal/storage"
	"github.com/aanand-mishra/studentdb-api/internal/types"
	"github.com/aanand-mishra/studentdb-api/internal/utils/response"
)

const (
	msgNotFound    = "Student not found"
	msgSRNNotFound = "SRN not found"
)

var validate = newValidator()

// newValidator reports field errors by their JSON name ("srn") rather than
// the Go field name ("SRN").
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// GetList handles GET /api/students.
// Responds with every student, highest id first, or [] when there are none.
func GetList(store storage.Storage, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := store.ListStudents(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("error listing students")
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// GetByID handles GET /api/students/{id}.
//
// An id that is not an integer cannot match any row and is answered like
// any other missing student.
func GetByID(store storage.Storage, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "id")

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, http.StatusNotFound, msgNotFound)
			return
		}

		st, err := store.GetStudentByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.Error(w, http.StatusNotFound, msgNotFound)
			return
		}
		if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("error getting student")
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, st)
	}
}

// GetBySRN handles GET /api/students/srn/{srn}.
// Surrounding whitespace is ignored and the match is case-insensitive.
func GetBySRN(store storage.Storage, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		srn := strings.TrimSpace(chi.URLParam(r, "srn"))
		log.Debug().Str("srn", srn).Msg("searching for srn")

		st, err := store.GetStudentBySRN(r.Context(), srn)
		if errors.Is(err, storage.ErrNotFound) {
			log.Debug().Str("srn", srn).Msg("no record found for srn")
			response.Error(w, http.StatusNotFound, msgSRNNotFound)
			return
		}
		if err != nil {
			log.Error().Err(err).Str("srn", srn).Msg("error getting student by srn")
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		log.Debug().Int64("id", st.ID).Str("srn", srn).Msg("student found")
		response.WriteJSON(w, http.StatusOK, st)
	}
}

// New handles POST /api/students.
//
// Request body:
//
//	{ "srn": "SRN001", "name": "Alice", "age": 20, "dept": "CS", "email": "a@x.com" }
//
// Success: { "success": true, "id": 1 }
func New(store storage.Storage, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		id, err := store.CreateStudent(r.Context(), req)
		if err != nil {
			log.Error().Err(err).Str("srn", req.SRN).Msg("error creating student")
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		log.Info().Int64("id", id).Msg("student created")
		response.WriteJSON(w, http.StatusOK, types.CreateResponse{Success: true, ID: id})
	}
}

// Update handles PUT /api/students/{id}.
//
// Every field is overwritten. No existence check is made: updating an id
// that has no row succeeds and changes nothing.
func Update(store storage.Storage, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseWriteID(w, r)
		if !ok {
			return
		}

		req, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		if err := store.UpdateStudentByID(r.Context(), id, req); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("error updating student")
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		log.Info().Int64("id", id).Msg("student updated")
		response.WriteJSON(w, http.StatusOK, types.SuccessResponse{Success: true})
	}
}

// Delete handles DELETE /api/students/{id}.
// Deleting an id that has no row succeeds.
func Delete(store storage.Storage, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseWriteID(w, r)
		if !ok {
			return
		}

		if err := store.DeleteStudentByID(r.Context(), id); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("error deleting student")
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		log.Info().Int64("id", id).Msg("student deleted")
		response.WriteJSON(w, http.StatusOK, types.SuccessResponse{Success: true})
	}
}

func parseWriteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid id: must be an integer")
		return 0, false
	}
	return id, true
}

// decodeStudent reads and validates the write payload. On failure it has
// already answered 400 and returns false.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.StudentRequest, bool) {
	var req types.StudentRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "request body is empty")
		return req, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return req, false
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verrs))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		}
		return req, false
	}

	return req, true
}
