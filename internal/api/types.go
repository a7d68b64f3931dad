// Package api defines the shared request/response envelope types used by
// all HTTP handlers.
package api

// MessageResponse is the body of a successful operation that carries no data.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of a failed operation with a single error string.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse is the body of a validation failure. Keys are field
// names, values the messages for that field.
type FieldErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// TokenPairResponse is returned by login: an access/refresh credential pair.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenResponse is returned by token refresh: a new access token.
type TokenResponse struct {
	Access string `json:"access"`
}

// PageResponse is the pagination envelope for list endpoints.
type PageResponse[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}
