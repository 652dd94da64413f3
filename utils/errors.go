package utils

// ErrorResponse is the JSON shape for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
