package dto

// APIErrorResponse is the structured error object returned by the HTTP boundary.
type APIErrorResponse struct {
	ErrorCode string         `json:"errorCode"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}
