// Package apierror provides the error envelopes returned to API clients.
// Storage or driver errors never reach the client verbatim.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Code is a stable machine-readable reason; Detail is meant for people.
type APIError struct {
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func NewWithCode(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// ValidationError wraps field errors from request validation.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: "validacion", Detail: "Error de validacion", Fields: fields}
}
