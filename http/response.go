package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sagarc03/assetserve"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// writeError is WriteError without a body for HEAD requests.
func writeError(w http.ResponseWriter, r *http.Request, code int, errCode, message string) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		return
	}
	WriteError(w, code, errCode, message)
}

// HandleError logs an unexpected error and writes a generic 500. The error
// text is never sent to the client.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request error",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)

	setErrorHeaders(w)
	writeError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error")
}

// handleCanceled answers a request whose context ended before any response
// was written.
func handleCanceled(w http.ResponseWriter, r *http.Request) {
	slog.Debug("request canceled",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
	)

	setErrorHeaders(w)
	writeError(w, r, http.StatusServiceUnavailable, "unavailable", "Service unavailable")
}

func setErrorHeaders(w http.ResponseWriter) {
	header := w.Header()
	for k, v := range assetserve.BuildHeaders(assetserve.HeadersError, "") {
		header[k] = v
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
