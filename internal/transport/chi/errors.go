package chi

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/saunarec/internal/domain"
)

// Error codes returned in the "code" field of error responses.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeNotFound         = "not_found"
	codeRateLimited      = "rate_limited"
	codeNoData           = "no_data"
	codeStorageError     = "storage_error"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrDataUnavailable,
		domain.ErrEmptyCorpus,
		domain.ErrInvalidPost,
		domain.ErrStorage,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// noDataHandler reports a missing or empty catalog the same way.
func noDataHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrDataUnavailable) && !errors.Is(err, domain.ErrEmptyCorpus) {
		return false
	}
	writeError(w, http.StatusInternalServerError, codeNoData, domain.ErrDataUnavailable.Error())
	return true
}

// fieldErrorHandler reports which post field failed validation.
func fieldErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var fe *domain.FieldError
	if !errors.As(err, &fe) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    codeValidationFailed,
		Message: fe.Error(),
		Field:   fe.Field,
	})
	return true
}
