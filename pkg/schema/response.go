package schema

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/letterkit/letterkit/pkg/validate"
)

// Response codes for validation failures at the HTTP boundary.
const (
	CodeValidationFailed        = "VALIDATION_FAILED"
	CodeInvalidRequestFormat    = "INVALID_REQUEST_FORMAT"
	CodeRequestValidationFailed = "REQUEST_VALIDATION_FAILED"
	CodeContentValidationFailed = "CONTENT_VALIDATION_FAILED"
)

// ErrorResponse is the standard 400 payload for validation failures.
type ErrorResponse struct {
	Message   string           `json:"message"`
	Code      string           `json:"code"`
	Errors    []validate.Issue `json:"errors"`
	Warnings  []validate.Issue `json:"warnings"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewValidationErrorResponse builds the standard validation failure payload.
func NewValidationErrorResponse(message string, errs, warnings []validate.Issue) ErrorResponse {
	return newErrorResponse(CodeValidationFailed, message, errs, warnings)
}

func newErrorResponse(code, message string, errs, warnings []validate.Issue) ErrorResponse {
	if errs == nil {
		errs = []validate.Issue{}
	}
	if warnings == nil {
		warnings = []validate.Issue{}
	}
	return ErrorResponse{
		Message:   message,
		Code:      code,
		Errors:    errs,
		Warnings:  warnings,
		Timestamp: time.Now().UTC(),
	}
}

// WriteError writes a validation failure as HTTP 400 JSON.
func WriteError(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(resp)
}
