package variant

import (
	"errors"
	"fmt"
	"net/http"
)

// Definition is a classifiable error type: a stable name used as the registry
// key plus the policy applied to every instance created from it.
//
// Definitions are meant to be package-level values:
//
//	var ErrQuotaExceeded = variant.Define("QuotaExceeded",
//		variant.WithStatus(http.StatusTooManyRequests),
//		variant.WithSeverity(variant.SeverityWarn),
//	)
//
// Definitions are immutable once built and safe to share between goroutines.
type Definition struct {
	name          string
	severity      Severity
	status        int
	publicMessage string
	render        RenderFunc
	parent        *Definition
}

// RenderFunc replaces the default response rendering of a definition.
type RenderFunc func(e *Error) Response

// Option configures a Definition.
type Option func(*Definition)

// sets the severity instances are logged at
func WithSeverity(s Severity) Option {
	return func(d *Definition) {
		if s.Valid() {
			d.severity = s
		}
	}
}

// sets the HTTP status rendered for instances
func WithStatus(code int) Option {
	return func(d *Definition) {
		if code > 0 {
			d.status = code
		}
	}
}

// replaces the instance message in responses with a fixed text
func WithPublicMessage(msg string) Option {
	return func(d *Definition) {
		d.publicMessage = msg
	}
}

// overrides how instances render their response
func WithRenderer(fn RenderFunc) Option {
	return func(d *Definition) {
		d.render = fn
	}
}

// Define creates a root definition. It panics when name is empty, since a
// definition without a name cannot be registered or rendered.
func Define(name string, opts ...Option) *Definition {
	if name == "" {
		panic("variant: definition name must not be empty")
	}

	d := &Definition{
		name:     name,
		severity: DefaultSeverity,
		status:   http.StatusInternalServerError,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Extend derives a definition from d. The child inherits severity, status,
// public message and renderer, then applies opts. It always gets its own name,
// so registering the parent does not make child instances registered (and
// the other way around).
func (d *Definition) Extend(name string, opts ...Option) *Definition {
	if name == "" {
		panic("variant: definition name must not be empty")
	}

	child := &Definition{
		name:          name,
		severity:      d.severity,
		status:        d.status,
		publicMessage: d.publicMessage,
		render:        d.render,
		parent:        d,
	}

	for _, opt := range opts {
		opt(child)
	}

	return child
}

func (d *Definition) Name() string {
	return d.name
}

func (d *Definition) Severity() Severity {
	return d.severity
}

func (d *Definition) StatusCode() int {
	return d.status
}

func (d *Definition) PublicMessage() string {
	return d.publicMessage
}

// returns the definition d was extended from, nil for root definitions
func (d *Definition) Parent() *Definition {
	return d.parent
}

// New creates an instance and captures the current stack.
func (d *Definition) New(message string, opts ...NewOption) *Error {
	e := newError(d, KindVariant, message, callerSkip)
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Newf creates an instance with a formatted message. Use With to add
// instance options.
func (d *Definition) Newf(format string, args ...any) *Error {
	return newError(d, KindVariant, fmt.Sprintf(format, args...), callerSkip)
}

// Wrap creates a wrapping instance of d around original.
// See the package-level Wrap.
func (d *Definition) Wrap(message string, original error) (*Error, error) {
	return wrap(d, message, original)
}

// Match reports whether err is an instance of d or of any definition derived
// from d. Unlike registry lookups this walks the definition chain.
func (d *Definition) Match(err error) bool {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return false
	}

	for cur := e.def; cur != nil; cur = cur.parent {
		if cur == d {
			return true
		}
	}

	return false
}

func (d *Definition) String() string {
	return d.name
}
