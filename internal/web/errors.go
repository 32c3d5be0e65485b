package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/akoval/bdtrack/internal/core"
	"github.com/akoval/bdtrack/internal/importer"
	"github.com/akoval/bdtrack/internal/logging"
	"github.com/akoval/bdtrack/internal/store"
)

// errorResponse is the JSON body returned for all error statuses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if status >= 500 {
		logging.FromContext(r.Context()).Error("request failed",
			slog.Int("status", status),
			slog.String("code", code),
			slog.String("message", message),
		)
	}
	writeJSONStatus(w, status, errorResponse{Error: code, Message: message})
}

// respondError maps service errors to HTTP statuses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, core.ErrInvalid):
		writeError(w, r, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, importer.ErrFileNotFound):
		writeError(w, r, http.StatusNotFound, "import_file_not_found", err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
