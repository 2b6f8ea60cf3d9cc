package types

// APIError is the wire shape for a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// SuccessEnvelope wraps a successful payload in the uniform response shape.
type SuccessEnvelope struct {
	OK    bool      `json:"ok"`
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
	Meta  any       `json:"meta,omitempty"`
}

// ErrorEnvelope wraps a failure in the same uniform shape.
type ErrorEnvelope struct {
	OK    bool     `json:"ok"`
	Data  any      `json:"data"`
	Error APIError `json:"error"`
}
