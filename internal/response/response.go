// Package response provides shared JSON response helpers for HTTP handlers.
package response

import (
	"encoding/json"
	"net/http"
)

// Values of the status field.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageNotFound is sent when an object is absent from the probed locations.
const MessageNotFound = "File not found"

// Envelope is the standard API response body.
type Envelope struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message,omitempty" example:"File is uploaded"`
}

// ListError is the body of a failed listing.
type ListError struct {
	Status string `json:"status" example:"error"`
	Error  string `json:"error"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Success writes a 200 success envelope.
func Success(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Message: message})
}

// Error writes an error envelope with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Status: StatusError, Message: message})
}

// Failed writes a 200 error envelope. Backend failures are reported this way
// rather than as server errors.
func Failed(w http.ResponseWriter, message string) {
	Error(w, http.StatusOK, message)
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, MessageNotFound)
}

// InternalError writes a 500 response carrying the error text.
func InternalError(w http.ResponseWriter, err error) {
	Error(w, http.StatusInternalServerError, err.Error())
}
