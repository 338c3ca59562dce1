// Package ginerr connects a dispatch.Handler to gin: errors attached with
// c.Error and panics are classified, logged with request fields and written
// as the handler's formatted response.
package ginerr

import (
	"fmt"
	"net/http"

	"codeberg.org/algorave/errhandler/dispatch"
	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader is read into the request_id log field.
const RequestIDHeader = "X-Request-ID"

// Middleware dispatches the last error recorded on the gin context once the
// rest of the chain has run, and recovers panics into errors. When a handler
// already wrote a response the error is only logged.
func Middleware[T any](h *dispatch.Handler[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			// let net/http abort the connection as it would without us
			if r == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
				panic(r)
			}

			c.Abort()
			dispatchError(c, h, panicError(r))
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		dispatchError(c, h, c.Errors.Last().Err)
	}
}

// only logs err when the response is already on its way
func dispatchError[T any](c *gin.Context, h *dispatch.Handler[T], err error) {
	if c.Writer.Written() {
		h.Handle(err, Context(c))
		return
	}

	respond(c, h, err)
}

func respond[T any](c *gin.Context, h *dispatch.Handler[T], err error) {
	status, body := h.Respond(err, Context(c))

	if typed, ok := any(body).(interface{ ContentType() string }); ok {
		c.Header("Content-Type", typed.ContentType())
	}

	c.AbortWithStatusJSON(status, body)
}

// errors are kept as is so registered variants stay registered; anything
// else gets a stack at the recovery site
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}

	return pkgerrors.New(fmt.Sprintf("panic: %v", r))
}

// Context returns the dispatch context of a request: its log fields.
func Context(c *gin.Context) dispatch.Context {
	return dispatch.Context{Fields: RequestFields(c)}
}

// RequestFields collects method, path, client ip, request id, user id and
// trace ids of the request, skipping the ones that are not set.
func RequestFields(c *gin.Context) map[string]any {
	fields := map[string]any{}
	if c.Request == nil {
		return fields
	}

	fields["method"] = c.Request.Method
	fields["path"] = c.Request.URL.Path
	fields["client_ip"] = c.ClientIP()

	if route := c.FullPath(); route != "" {
		fields["route"] = route
	}

	if id := c.GetHeader(RequestIDHeader); id != "" {
		fields["request_id"] = id
	}

	if userID := c.GetString("user_id"); userID != "" {
		fields["user_id"] = userID
	}

	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
		fields["trace_id"] = sc.TraceID().String()
		fields["span_id"] = sc.SpanID().String()
	}

	return fields
}
