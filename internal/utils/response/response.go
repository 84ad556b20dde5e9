// Package response provides helpers for writing JSON HTTP responses.
//
// Success responses may be any JSON shape (a student, a list, a
// {success:true} object). Error responses always look like:
//
//	{ "error": "Student not found" }
//
// Clients tell failure classes apart by status code, not by message.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope for every error.
type Response struct {
	Error string `json:"error"`
}

// WriteJSON encodes data with the given status code.
// Headers must be set before WriteHeader, and WriteHeader before the body.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, status int, msg string) error {
	return WriteJSON(w, status, Response{Error: msg})
}

// GeneralError wraps any error into the error envelope, message verbatim.
func GeneralError(err error) Response {
	return Response{Error: err.Error()}
}

// ValidationError joins the field errors reported by go-playground/validator
// into one sentence, e.g. "field srn is required, field email must be a
// valid email address".
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{Error: strings.Join(msgs, ", ")}
}
