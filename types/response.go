package types

// APIResponse is the envelope used for errors and for endpoints without a
// dedicated response shape.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Message is returned by command-style endpoints.
type Message struct {
	Message string `json:"message"`
}
