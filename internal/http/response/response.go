package response

import (
	"encoding/json"
	"io"
	"net/http"
)

// MaxBodyBytes caps every decoded request body
const MaxBodyBytes = 1 << 20 // 1MB

// Success is the body of every accepted contact submission
type Success struct {
	Success bool `json:"success"`
}

// Error is the body of every rejected request
type Error struct {
	Error string `json:"error"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; a failed encode can only mean the client went away.
	_ = json.NewEncoder(w).Encode(v)
}

// OK sends 200 {"success": true}
func OK(w http.ResponseWriter) {
	JSON(w, http.StatusOK, Success{Success: true})
}

// BadRequest sends a 400 with the given message
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, Error{Error: message})
}

// InternalServerError sends a 500 with the given message
func InternalServerError(w http.ResponseWriter, message string) {
	JSON(w, http.StatusInternalServerError, Error{Error: message})
}

// TooManyRequests sends a 429 with the given message
func TooManyRequests(w http.ResponseWriter, message string) {
	JSON(w, http.StatusTooManyRequests, Error{Error: message})
}

// DecodeLenient decodes the JSON request body into dst and reports whether it succeeded.
// It never writes a response: callers treat a bad body as an empty one.
// dst is only assigned when the whole body decoded cleanly. Types that must survive a single
// mistyped field implement json.Unmarshaler (see contact.Submission).
func DecodeLenient[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	if r.Body == nil {
		return false
	}

	var v T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		return false
	}
	// Trailing data after the object makes the whole body malformed.
	if _, err := dec.Token(); err != io.EOF {
		return false
	}

	*dst = v
	return true
}
