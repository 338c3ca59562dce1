package dispatch

import (
	"net/http"
	"reflect"

	"codeberg.org/algorave/errhandler/internal/config"
	"codeberg.org/algorave/errhandler/logging"
	"codeberg.org/algorave/errhandler/registry"
	"codeberg.org/algorave/errhandler/variant"
)

// message logged when Handle receives something that is not an error
const invalidInputFormat = "Unexpected error. Instance of error expected. Given error type: %T"

// stack placeholder for development responses of errors without one
const noStack = "[no stack]"

// Catalog is the registry the engine consults. *registry.Registry is the
// default implementation.
type Catalog interface {
	Register(def *variant.Definition)
	Unregister(def *variant.Definition)
	WrapAs(raw error, wrapper *variant.Definition)
	RemoveWrap(raw error)
	Variant(name string) (*variant.Definition, bool)
	Wrapper(name string) (*variant.Definition, bool)
}

// Formatter reshapes the canonical response into the caller's output type.
type Formatter[T any] func(variant.Response) T

type Options[T any] struct {
	// sets the process-wide stack depth when > 0, see variant.Stacks
	StackTraceLimit int
	// identity when nil; T must then be variant.Response (or an interface
	// it satisfies), otherwise responses format to the zero T
	FormatMessage Formatter[T]
	// defaults to an empty registry.Registry
	Catalog Catalog
	// used when a dispatch Context carries no logger; defaults to slog.Default
	Logger logging.Logger
	// defaults to config.IsDevEnv
	DevMode func() bool
}

// Context is the per-dispatch logging context passed to Handle.
type Context struct {
	Logger logging.Logger
	Fields map[string]any
}

type Handler[T any] struct {
	catalog Catalog
	format  Formatter[T]
	logger  logging.Logger
	devMode func() bool
}

// creates a handler producing canonical responses with an empty registry
func New() *Handler[variant.Response] {
	return NewWithOptions(Options[variant.Response]{})
}

// NewWithOptions creates a handler formatting responses to T.
//
// A StackTraceLimit changes the depth of every stack captured afterwards in
// the process, including those seen by other handlers.
func NewWithOptions[T any](opts Options[T]) *Handler[T] {
	if opts.StackTraceLimit > 0 {
		variant.Stacks.SetLimit(opts.StackTraceLimit)
	}

	h := &Handler[T]{
		catalog: opts.Catalog,
		format:  opts.FormatMessage,
		logger:  opts.Logger,
		devMode: opts.DevMode,
	}

	if h.catalog == nil {
		h.catalog = registry.New()
	}

	if h.format == nil {
		h.format = identity[T]
	}

	if h.logger == nil {
		h.logger = logging.NewSlog(nil)
	}

	if h.devMode == nil {
		h.devMode = config.IsDevEnv
	}

	return h
}

func identity[T any](r variant.Response) T {
	if v, ok := any(r).(T); ok {
		return v
	}

	var zero T
	return zero
}

// returns the catalog the handler consults
func (h *Handler[T]) Catalog() Catalog {
	return h.catalog
}

func (h *Handler[T]) Register(def *variant.Definition) {
	h.catalog.Register(def)
}

func (h *Handler[T]) Unregister(def *variant.Definition) {
	h.catalog.Unregister(def)
}

func (h *Handler[T]) WrapAs(raw error, wrapper *variant.Definition) {
	h.catalog.WrapAs(raw, wrapper)
}

func (h *Handler[T]) RemoveWrap(raw error) {
	h.catalog.RemoveWrap(raw)
}

// Handle logs err through ctx at the severity of its classification. It
// never panics: input that is not an error is logged at fatal.
func (h *Handler[T]) Handle(err error, ctx Context) {
	log := h.loggerFor(ctx)

	if isNil(err) {
		log.Fatal(invalidInputFormat, err)
		return
	}

	logResolution(log, h.Resolve(err))
}

// ErrorToHTTPResponse renders err as a formatted response without logging.
func (h *Handler[T]) ErrorToHTTPResponse(err error) T {
	return h.format(h.render(h.Resolve(err)))
}

// Respond logs and renders err from a single resolution, so a wrapped error
// is constructed once. It returns the response status with the formatted body.
func (h *Handler[T]) Respond(err error, ctx Context) (int, T) {
	log := h.loggerFor(ctx)

	if isNil(err) {
		log.Fatal(invalidInputFormat, err)
	}

	res := h.Resolve(err)
	if res.Classification != Invalid {
		logResolution(log, res)
	}

	resp := h.render(res)
	return resp.StatusCode, h.format(resp)
}

func (h *Handler[T]) loggerFor(ctx Context) logging.Logger {
	log := ctx.Logger
	if log == nil {
		log = h.logger
	}

	if len(ctx.Fields) > 0 {
		log = log.Child(ctx.Fields)
	}

	return log
}

// renders the canonical response of a resolution; stacks only in dev mode
func (h *Handler[T]) render(res Resolution) (resp variant.Response) {
	if res.Variant != nil {
		resp = safeResponse(res.Variant)
	} else {
		resp = unknownResponse(res.Subject)
	}

	if !h.devMode() {
		resp.Stack = ""
		return resp
	}

	resp.Stack = noStack
	if st := variant.StackOf(res.Subject); st != "" {
		resp.Stack = st
	}

	return resp
}

// a panicking renderer degrades to the unknown response
func safeResponse(e *variant.Error) (resp variant.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = unknownResponse(e)
		}
	}()

	return e.ToResponse()
}

func unknownResponse(err error) variant.Response {
	msg := ""
	if !isNil(err) {
		msg = err.Error()
	}

	return variant.Response{
		Code:       variant.UnknownCode,
		Message:    msg,
		StatusCode: http.StatusInternalServerError,
	}
}

// calls exactly one severity method of log for res
func logResolution(log logging.Logger, res Resolution) {
	switch res.Severity {
	case variant.SeverityTrace:
		log.Trace(res.Subject)
	case variant.SeverityDebug:
		log.Debug(res.Subject)
	case variant.SeverityInfo:
		log.Info(res.Subject)
	case variant.SeverityWarn:
		log.Warn(res.Subject)
	case variant.SeverityFatal:
		log.Fatal(res.Subject)
	default:
		log.Error(res.Subject)
	}
}

// reports whether err is nil or a typed nil pointer
func isNil(err error) bool {
	if err == nil {
		return true
	}

	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
