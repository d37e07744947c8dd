// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Success payloads may take any JSON shape. Failures that are not plain
// domain payloads use a "detail" envelope: a string for HTTP errors
// (404, 500) and a list of field errors for request-validation failures.
package response

import (
	"encoding/json"
	"net/http"
)

// Detail is the envelope for HTTP errors such as 404 and 500:
//
//	{ "detail": "Student not found" }
type Detail struct {
	Detail string `json:"detail"`
}

// FieldError describes one failing input of a request. Loc is the location
// of the input, e.g. ["path", "student_id"] or ["body", "age"].
type FieldError struct {
	Type  string `json:"type"`
	Loc   []any  `json:"loc"`
	Msg   string `json:"msg"`
	Input any    `json:"input"`
}

// ValidationErrors is the 422 envelope:
//
//	{ "detail": [ { "type": "missing", "loc": ["query", "test"], ... } ] }
type ValidationErrors struct {
	Detail []FieldError `json:"detail"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
// Headers must be set before WriteHeader, and WriteHeader before the body.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into a Detail. Use this for unexpected
// errors such as storage failures.
func GeneralError(err error) Detail {
	return Detail{Detail: err.Error()}
}

// NotFound returns a Detail carrying msg.
func NotFound(msg string) Detail {
	return Detail{Detail: msg}
}

// ValidationError wraps the collected field errors into the 422 envelope.
func ValidationError(errs []FieldError) ValidationErrors {
	return ValidationErrors{Detail: errs}
}
