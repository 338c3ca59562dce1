package variant

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	pkgerrors "github.com/pkg/errors"
)

// DefaultStackTraceLimit is the number of frames captured until a limit is set.
const DefaultStackTraceLimit = 10

// MaxStackTraceLimit caps SetLimit; larger values are stored as the cap.
const MaxStackTraceLimit = 1024

// frames above the user call site when newError is reached from a public
// constructor: runtime.Callers, captureStack, newError, the constructor
const callerSkip = 4

// StackConfig holds the stack depth used for every stack captured in the
// process. There is a single instance, Stacks: setting a limit through any
// dispatch.Handler changes the depth for all handlers and all definitions.
type StackConfig struct {
	limit atomic.Int32
}

// Stacks is the process-wide stack configuration.
var Stacks = newStackConfig()

func newStackConfig() *StackConfig {
	c := &StackConfig{}
	c.limit.Store(DefaultStackTraceLimit)
	return c
}

// sets how many frames subsequently captured stacks keep; n <= 0 is ignored
// and n above MaxStackTraceLimit is capped
func (c *StackConfig) SetLimit(n int) {
	if n <= 0 {
		return
	}

	c.limit.Store(int32(min(n, MaxStackTraceLimit))) //nolint:gosec // G115: bounded by MaxStackTraceLimit
}

// returns the current frame limit
func (c *StackConfig) Limit() int {
	return int(c.limit.Load())
}

// stackTracer is implemented by errors created with github.com/pkg/errors
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// captures up to Stacks.Limit() frames, skipping skip frames of runtime.Callers
func captureStack(skip int) []runtime.Frame {
	limit := Stacks.Limit()
	pcs := make([]uintptr, limit)

	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]runtime.Frame, 0, n)

	for {
		fr, more := frames.Next()
		out = append(out, fr)

		if !more || len(out) == limit {
			break
		}
	}

	return out
}

// header line(s) of a stack: "Name: message", or just the name
func stackHeader(name, message string) string {
	if message == "" {
		return name
	}

	return name + ": " + message
}

func formatFrame(function, file string, line int) string {
	return fmt.Sprintf("    at %s (%s:%d)", function, file, line)
}

func renderStack(header string, frames []runtime.Frame) string {
	var b strings.Builder
	b.WriteString(header)

	for _, fr := range frames {
		b.WriteByte('\n')
		b.WriteString(formatFrame(fr.Function, fr.File, fr.Line))
	}

	return b.String()
}

// renders a github.com/pkg/errors trace, bounded by the shared limit
func renderPkgStack(header string, st pkgerrors.StackTrace) string {
	limit := Stacks.Limit()

	var b strings.Builder
	b.WriteString(header)

	for i, f := range st {
		if i == limit {
			break
		}

		// %+s prints "function\n\tfile"
		fn, file, _ := strings.Cut(fmt.Sprintf("%+s", f), "\n\t")
		line, _ := strconv.Atoi(fmt.Sprintf("%d", f))

		b.WriteByte('\n')
		b.WriteString(formatFrame(fn, file, line))
	}

	return b.String()
}

// StackOf returns the stack text of err: the captured stack of a variant,
// the trace of a github.com/pkg/errors error, or "" when err carries none.
func StackOf(err error) string {
	if err == nil {
		return ""
	}

	if e, ok := err.(*Error); ok && e != nil {
		return e.stack
	}

	if st, ok := err.(stackTracer); ok {
		return renderPkgStack(err.Error(), st.StackTrace())
	}

	return ""
}
