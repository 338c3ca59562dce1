package variant

import (
	"log/slog"
	"reflect"
)

// Kind tells plain variant instances apart from wrapping instances.
type Kind int

const (
	// created from a definition with New/Newf
	KindVariant Kind = iota
	// created by Wrap around an original error
	KindWrapped
)

func (k Kind) String() string {
	if k == KindWrapped {
		return "wrapped"
	}

	return "variant"
}

// Error is an instance of a Definition.
type Error struct {
	def     *Definition
	kind    Kind
	message string
	status  int
	details any
	stack   string

	// only set on KindWrapped instances
	original           error
	stackBeforeRethrow string
}

// NewOption configures an instance at construction time.
type NewOption func(*Error)

// overrides the definition's status for one instance
func Status(code int) NewOption {
	return func(e *Error) {
		if code > 0 {
			e.status = code
		}
	}
}

// attaches structured details rendered into the response
func Details(v any) NewOption {
	return func(e *Error) {
		e.details = v
	}
}

// With returns a copy of e with opts applied, keeping its stack. It gives
// Newf and Wrap instances a status or details:
//
//	presets.Conflict.Newf("user %s exists", name).With(variant.Details(fields))
func (e *Error) With(opts ...NewOption) *Error {
	cp := *e
	for _, opt := range opts {
		opt(&cp)
	}

	return &cp
}

func newError(def *Definition, kind Kind, message string, skip int) *Error {
	return &Error{
		def:     def,
		kind:    kind,
		message: message,
		status:  def.status,
		stack:   renderStack(stackHeader(def.name, message), captureStack(skip)),
	}
}

func (e *Error) Error() string {
	return e.message
}

// returns the name of the most derived definition
func (e *Error) Name() string {
	return e.def.name
}

func (e *Error) Definition() *Definition {
	return e.def
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Severity() Severity {
	return e.def.severity
}

func (e *Error) StatusCode() int {
	return e.status
}

func (e *Error) Details() any {
	return e.details
}

func (e *Error) Stack() string {
	return e.stack
}

// returns the error a wrapping instance replaced, nil otherwise
func (e *Error) Original() error {
	return e.original
}

// returns the wrapper's own stack, before the original's stack was merged in
func (e *Error) StackBeforeRethrow() string {
	return e.stackBeforeRethrow
}

// Unwrap exposes the original error to errors.Is and errors.As.
// The original is never rendered into responses.
func (e *Error) Unwrap() error {
	return e.original
}

// ToResponse renders the canonical response for this instance.
func (e *Error) ToResponse() Response {
	if e.def.render != nil {
		return e.def.render(e)
	}

	msg := e.message
	if e.def.publicMessage != "" {
		msg = e.def.publicMessage
	}

	return Response{
		Code:       e.def.name,
		Message:    msg,
		StatusCode: e.status,
		Details:    e.details,
	}
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("name", e.def.name),
		slog.String("message", e.message),
		slog.String("severity", string(e.def.severity)),
		slog.Int("status", e.status),
	}

	if e.original != nil {
		attrs = append(attrs,
			slog.String("original", e.original.Error()),
			slog.String("original_type", TypeName(e.original)),
		)
	}

	if e.stack != "" {
		attrs = append(attrs, slog.String("stack", e.stack))
	}

	return slog.GroupValue(attrs...)
}

// TypeName returns the runtime type tag used for registry lookups: the
// definition name for variant instances, the fully qualified Go type name
// for anything else (e.g. "*github.com/jackc/pgx/v5/pgconn.PgError").
func TypeName(err error) string {
	if err == nil {
		return ""
	}

	if e, ok := err.(*Error); ok && e != nil && e.def != nil {
		return e.def.name
	}

	return qualifiedName(reflect.TypeOf(err))
}

func qualifiedName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "*" + qualifiedName(t.Elem())
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}
