package variant

// Response is the canonical payload rendered for a classified error.
// It is the only shape that leaves the engine before caller-side formatting.
type Response struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Stack      string `json:"stack,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// UnknownCode is the code rendered for errors nothing was registered for.
const UnknownCode = "UnknownError"
