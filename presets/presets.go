// Package presets defines the common error variants of an HTTP service and
// the wrap rules that promote driver and transport errors to them.
package presets

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"codeberg.org/algorave/errhandler/variant"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error Handling Guidelines:
//
// For HTTP handlers:
//   - Return or c.Error() a preset instance, e.g. presets.NotFound.New("user not found")
//   - Use presets.HTTPError.New(msg, variant.Status(code)) for one-off statuses
//   - Raw driver errors (pgx, net, websocket, encoding/json) can be
//     returned as is; the wrap rules below reclassify them
//   - Wrap redis errors explicitly, e.g. presets.CacheError.Wrap("cache miss", err)
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Wrap rules match the exact runtime type, so a fmt.Errorf wrapper is
//     handled as unknown; return the driver error unwrapped when it should
//     be reclassified

var (
	CustomError = variant.Define("CustomError")

	// per-instance status through variant.Status
	HTTPError = CustomError.Extend("HttpError")

	BadRequest = HTTPError.Extend("BadRequest",
		variant.WithStatus(http.StatusBadRequest),
		variant.WithSeverity(variant.SeverityWarn),
	)
	ValidationError = BadRequest.Extend("ValidationError",
		variant.WithSeverity(variant.SeverityInfo),
	)
	MalformedJSON = BadRequest.Extend("MalformedJSON",
		variant.WithSeverity(variant.SeverityInfo),
		variant.WithPublicMessage("request body is not valid JSON"),
	)
	InvalidOperation = BadRequest.Extend("InvalidOperation")

	Unauthorized = HTTPError.Extend("Unauthorized",
		variant.WithStatus(http.StatusUnauthorized),
		variant.WithSeverity(variant.SeverityWarn),
	)
	Forbidden = HTTPError.Extend("Forbidden",
		variant.WithStatus(http.StatusForbidden),
		variant.WithSeverity(variant.SeverityWarn),
	)
	NotFound = HTTPError.Extend("NotFound",
		variant.WithStatus(http.StatusNotFound),
		variant.WithSeverity(variant.SeverityInfo),
	)
	Conflict = HTTPError.Extend("Conflict",
		variant.WithStatus(http.StatusConflict),
		variant.WithSeverity(variant.SeverityWarn),
	)
	TooManyRequests = HTTPError.Extend("TooManyRequests",
		variant.WithStatus(http.StatusTooManyRequests),
		variant.WithSeverity(variant.SeverityWarn),
	)
)

// wrappers, never leak the original message
var (
	RethrownError = CustomError.Extend("RethrownError")

	DatabaseError = RethrownError.Extend("DatabaseError",
		variant.WithPublicMessage("database operation failed"),
	)
	// no wrap rule: redis.Nil shares its runtime type with every redis error
	// reply, so callers wrap explicitly with CacheError.Wrap
	CacheError = RethrownError.Extend("CacheError",
		variant.WithStatus(http.StatusServiceUnavailable),
		variant.WithPublicMessage("cache operation failed"),
	)
	ConnectionError = RethrownError.Extend("ConnectionError",
		variant.WithStatus(http.StatusServiceUnavailable),
		variant.WithPublicMessage("connection error occurred"),
	)
	Timeout = RethrownError.Extend("Timeout",
		variant.WithStatus(http.StatusGatewayTimeout),
		variant.WithSeverity(variant.SeverityWarn),
		variant.WithPublicMessage("request timed out"),
	)
	ConnectionClosed = RethrownError.Extend("ConnectionClosed",
		variant.WithStatus(http.StatusGone),
		variant.WithSeverity(variant.SeverityInfo),
		variant.WithPublicMessage("connection closed"),
	)
)

// Registrar is satisfied by *registry.Registry and *dispatch.Handler.
type Registrar interface {
	Register(def *variant.Definition)
	WrapAs(raw error, wrapper *variant.Definition)
}

// Rule promotes errors with the runtime type of Source to Wrapper.
type Rule struct {
	Source  error
	Wrapper *variant.Definition
}

// returns every preset definition
func Definitions() []*variant.Definition {
	return []*variant.Definition{
		CustomError, HTTPError, BadRequest, ValidationError, MalformedJSON,
		InvalidOperation, Unauthorized, Forbidden, NotFound, Conflict,
		TooManyRequests, RethrownError, DatabaseError, CacheError,
		ConnectionError, Timeout, ConnectionClosed,
	}
}

// returns the preset wrap rules
func Rules() []Rule {
	return []Rule{
		{Source: (*pgconn.PgError)(nil), Wrapper: DatabaseError},
		{Source: (*pgconn.ConnectError)(nil), Wrapper: ConnectionError},
		{Source: (*net.OpError)(nil), Wrapper: ConnectionError},
		{Source: (*net.DNSError)(nil), Wrapper: ConnectionError},
		{Source: context.DeadlineExceeded, Wrapper: Timeout},
		{Source: (*websocket.CloseError)(nil), Wrapper: ConnectionClosed},
		{Source: (*json.SyntaxError)(nil), Wrapper: MalformedJSON},
		{Source: (*json.UnmarshalTypeError)(nil), Wrapper: MalformedJSON},
		{Source: validator.ValidationErrors(nil), Wrapper: ValidationError},
	}
}

// Register registers every preset definition and wrap rule with r.
func Register(r Registrar) {
	for _, def := range Definitions() {
		r.Register(def)
	}

	for _, rule := range Rules() {
		r.WrapAs(rule.Source, rule.Wrapper)
	}
}
