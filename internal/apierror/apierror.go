// Package apierror holds the JSON envelope every 4xx/5xx response uses.
//
// Handlers map service errors onto statuses as follows: malformed input 400,
// field validation 422 (with per-field tags), unknown id 404, insufficient
// stock or a repeated outbound request 409, failed manager mail 502, and an
// unreachable store 503. Store and unexpected errors never reach the client
// text; they are logged instead.
package apierror

// APIError is the `{"detail": ...}` body of every error response.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError is the 422 body; Fields maps a struct field to the failed tag.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "입력값이 올바르지 않습니다", Fields: fields}
}
