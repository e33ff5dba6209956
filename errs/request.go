package errs

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Authentication & Authorization Errors
var (
	ErrMissingToken = errors.New("missing access token")
	ErrExpiredToken = errors.New("expired access token")
	ErrInvalidToken = errors.New("invalid access token")
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrValidationFailed = errors.New("validation failed")
)

func BadRequest(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

// Authentication & Authorization Error Constructors
func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Missing access token",
		Field:      "authorization",
	}
}

func NewExpiredTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrExpiredToken,
		Details:    "Access token has expired",
		Field:      "authorization",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidToken,
		Details:    "Access token is invalid",
		Field:      "authorization",
	}
}

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

// ValidationErr carries every violated field of a request in one error, keyed
// by the field's JSON path.
type ValidationErr struct {
	Fields map[string]string
}

func NewValidationErr() *ValidationErr {
	return &ValidationErr{Fields: make(map[string]string)}
}

func (e *ValidationErr) Add(field, message string) *ValidationErr {
	e.Fields[field] = message
	return e
}

func (e *ValidationErr) HasViolations() bool {
	return len(e.Fields) > 0
}

func (e *ValidationErr) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(fields, ", "))
}

func (e *ValidationErr) Unwrap() error {
	return ErrValidationFailed
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
