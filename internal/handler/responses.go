package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/osse101/WagerBot_Go/internal/domain"
	"github.com/osse101/WagerBot_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode first so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and maps the error to a response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", opName, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "operation", opName, "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgRegionNotFoundError  = "Region not found"
	ErrMsgRegionClosedError    = "Region is closed for betting"
	ErrMsgAmountRangeError     = "Amount is out of range"
	ErrMsgAlreadyResolvedError = "A result has already been recorded for that region and date"
	ErrMsgAlreadyScoredError   = "Scores have already been recorded for that result"
	ErrMsgNotFoundError        = "Resource not found"
	ErrMsgNoChangeError        = "Nothing to change"
	ErrMsgStoreFailureError    = "Server error occurred. Please try again."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Unknown errors become a generic 500 so internal details never leak.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, invalidInputMessage(err)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFoundError
	case errors.Is(err, domain.ErrAlreadyResolved):
		return http.StatusConflict, ErrMsgAlreadyResolvedError
	case errors.Is(err, domain.ErrAlreadyScored):
		return http.StatusConflict, ErrMsgAlreadyScoredError
	case errors.Is(err, domain.ErrNoChange):
		return http.StatusConflict, ErrMsgNoChangeError
	case errors.Is(err, domain.ErrStoreFailure):
		return http.StatusInternalServerError, ErrMsgStoreFailureError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// invalidInputMessage picks the most specific message for a validation error.
// The wrapped text is built from domain constants so it is safe to show.
func invalidInputMessage(err error) string {
	switch msg := err.Error(); {
	case strings.Contains(msg, domain.ErrMsgRegionNotFound):
		return ErrMsgRegionNotFoundError
	case strings.Contains(msg, domain.ErrMsgRegionClosed):
		return ErrMsgRegionClosedError
	case strings.Contains(msg, domain.ErrMsgAmountRange):
		return ErrMsgAmountRangeError
	default:
		return msg
	}
}
