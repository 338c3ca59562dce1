package format

import (
	"codeberg.org/algorave/errhandler/variant"
)

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "unauthorized", "not_found")
	Message string `json:"message"`           // user-friendly message
	Details any    `json:"details,omitempty"` // optional details
	Stack   string `json:"stack,omitempty"`   // development only
}

func (ErrorResponse) ContentType() string { return contentTypeJSON }

// Compact renders the snake_case code style, "NotFound" becomes "not_found".
func Compact(r variant.Response) Body {
	return ErrorResponse{
		Error:   snakeCase(r.Code),
		Message: r.Message,
		Details: r.Details,
		Stack:   r.Stack,
	}
}
