package ginerr

import (
	"errors"
	"io"

	"codeberg.org/algorave/errhandler/presets"
	"github.com/gin-gonic/gin"
)

// BindJSON binds the request body into obj. On failure the error is recorded
// on the context (decoding and validation errors reach the presets wrap
// rules untouched) and false is returned.
func BindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, io.EOF):
		err = presets.BadRequest.New("request body is empty")
	case errors.Is(err, io.ErrUnexpectedEOF):
		err = presets.MalformedJSON.New("unexpected end of JSON input")
	}

	c.Error(err) //nolint:errcheck,gosec // recorded for the error middleware
	return false
}
