package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/errors"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/logger"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/validator"
)

// Response is the JSON envelope every endpoint returns. Failure responses
// always carry a human-readable Message; Count is set only by list endpoints
// that report a total alongside the data.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK builds a success envelope around data.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKCount builds a success envelope with a total count, used by list
// endpoints whose callers poll and replace state wholesale.
func OKCount(data any, count int) Response {
	return Response{Success: true, Data: data, Count: &count}
}

// Fail builds a failure envelope with a message.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a failure envelope based on the error type. It handles
// AppError and the sentinel errors, and logs internal server errors. It
// prefers the request-scoped logger from context (set by the RequestLogger
// middleware) over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Status, Fail(appErr.Message))
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		message = "resource conflict"
	case errors.Is(err, apperrors.ErrUnavailable):
		message = "storage temporarily unavailable"
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Fail(message))
}

// WriteValidationError writes a failure envelope for a request validation
// error, flattening field errors into the message.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Fail(valErr.Error()))
		return
	}

	WriteJSON(w, http.StatusBadRequest, Fail(err.Error()))
}
