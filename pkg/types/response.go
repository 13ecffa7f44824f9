package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// MessageEnvelope carries user-facing confirmation text for delete/toggle
// endpoints that have no resource payload.
type MessageEnvelope struct {
	Message string `json:"message"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
