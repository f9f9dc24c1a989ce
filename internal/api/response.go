package api

import (
	"encoding/json"
	"net/http"

	"github.com/voxmod/voxmod/internal/schema"
)

// WriteJSON writes the data structure as JSON.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a bare error message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, schema.ErrorResponse{Error: message})
}

// WriteErrorDetails writes an error with diagnostic payload and an optional
// remediation suggestion.
func WriteErrorDetails(w http.ResponseWriter, status int, message string, details interface{}, suggestion string) {
	WriteJSON(w, status, schema.ErrorResponse{
		Error:      message,
		Details:    details,
		Suggestion: suggestion,
	})
}
