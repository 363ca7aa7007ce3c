package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/shiurhub/shiurhub/internal/log"
)

// ErrorBody is the JSON error envelope. Details carries the operator-facing
// cause on internal failures and is omitted on client errors.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteBadRequest writes a 400 response with a bare error message.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: message})
}

// WriteNotFound writes a 404 response with a bare error message.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusNotFound, ErrorBody{Error: message})
}

// WriteInternalError writes a 500 response carrying the cause in details,
// and logs it with the request's correlation ID.
func WriteInternalError(w http.ResponseWriter, r *http.Request, logger *log.Logger, message string, err error) {
	if logger == nil {
		logger = log.Default()
	}
	logger.ErrorContext(r.Context(), "request failed",
		"path", r.URL.Path,
		"error", err,
	)
	WriteJSON(w, http.StatusInternalServerError, ErrorBody{
		Error:   message,
		Details: err.Error(),
	})
}
