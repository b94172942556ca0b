package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pmathis/travel-planner/backend/internal/domain"
)

// ErrorResponse is the error body shared by every failing endpoint.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code plus a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are logged,
// not surfaced — by then the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes the standard error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeDomainError maps a service-layer error onto its HTTP status.
// notFoundMsg is supplied by the caller because the handler is the layer
// that knows what was being looked up (e.g. "travel not found").
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFoundMsg)
	case errors.Is(err, domain.ErrGone):
		writeError(w, http.StatusGone, "gone", notFoundMsg+" (deleted)")
	case errors.Is(err, domain.ErrAlreadyDeleted):
		writeError(w, http.StatusConflict, "already_deleted", "resource is already deleted")
	case errors.Is(err, domain.ErrNotDeleted):
		writeError(w, http.StatusConflict, "not_deleted", "resource is not deleted")
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requestError writes a 422 for a bad request rejected before reaching the
// service layer (e.g. missing or malformed body, malformed UUID).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TravelService.Create: validation error: title is required"
// → "title is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
