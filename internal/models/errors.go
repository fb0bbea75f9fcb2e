package models

// ErrorResponse is the flat error body returned by the public API.
type ErrorResponse struct {
	Error string `json:"error"`
}
