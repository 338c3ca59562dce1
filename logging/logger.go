// Package logging defines the logger capability consumed by the dispatch
// engine and its log/slog implementation.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"codeberg.org/algorave/errhandler/variant"
)

// Logger is the capability the dispatch engine logs through. Each severity
// method accepts an error, an object or a format string as v; trailing args
// are a format string and its arguments (or the arguments of v when v is the
// format string).
type Logger interface {
	Child(fields map[string]any) Logger
	Enabled(level variant.Severity) bool
	Trace(v any, args ...any)
	Debug(v any, args ...any)
	Info(v any, args ...any)
	Warn(v any, args ...any)
	Error(v any, args ...any)
	Fatal(v any, args ...any)
}

// custom levels around the four built into slog
const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

// maps a severity to its slog level
func LevelFor(s variant.Severity) slog.Level {
	switch s {
	case variant.SeverityTrace:
		return LevelTrace
	case variant.SeverityDebug:
		return slog.LevelDebug
	case variant.SeverityInfo:
		return slog.LevelInfo
	case variant.SeverityWarn:
		return slog.LevelWarn
	case variant.SeverityFatal:
		return LevelFatal
	default:
		return slog.LevelError
	}
}

// parses a severity name into a slog level
func ParseLevel(name string) (slog.Level, error) {
	s, err := variant.ParseSeverity(name)
	if err != nil {
		return slog.LevelInfo, err
	}

	return LevelFor(s), nil
}

// returns the display name of a level, including the custom ones
func LevelName(l slog.Level) string {
	switch {
	case l < slog.LevelDebug:
		return "TRACE"
	case l >= LevelFatal:
		return "FATAL"
	default:
		return l.String()
	}
}

// ReplaceAttr renames the custom levels in slog handler output. Use it as
// slog.HandlerOptions.ReplaceAttr.
func ReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelName(l))
		}
	}

	return a
}

// Slog implements Logger on a *slog.Logger. Fatal logs at LevelFatal and
// returns; it never exits the process.
type Slog struct {
	l *slog.Logger
}

// wraps l, falling back to slog.Default when l is nil
func NewSlog(l *slog.Logger) *Slog {
	if l == nil {
		l = slog.Default()
	}

	return &Slog{l: l}
}

// returns the underlying slog logger
func (s *Slog) Logger() *slog.Logger {
	return s.l
}

// returns a logger carrying fields on every record, in key order
func (s *Slog) Child(fields map[string]any) Logger {
	if len(fields) == 0 {
		return s
	}

	return &Slog{l: s.l.With(fieldArgs(fields)...)}
}

func (s *Slog) Enabled(level variant.Severity) bool {
	return s.l.Enabled(context.Background(), LevelFor(level))
}

func (s *Slog) Trace(v any, args ...any) { s.log(variant.SeverityTrace, v, args) }
func (s *Slog) Debug(v any, args ...any) { s.log(variant.SeverityDebug, v, args) }
func (s *Slog) Info(v any, args ...any)  { s.log(variant.SeverityInfo, v, args) }
func (s *Slog) Warn(v any, args ...any)  { s.log(variant.SeverityWarn, v, args) }
func (s *Slog) Error(v any, args ...any) { s.log(variant.SeverityError, v, args) }
func (s *Slog) Fatal(v any, args ...any) { s.log(variant.SeverityFatal, v, args) }

func (s *Slog) log(sev variant.Severity, v any, args []any) {
	ctx := context.Background()
	level := LevelFor(sev)

	if !s.l.Enabled(ctx, level) {
		return
	}

	msg, attrs := compose(v, args)
	s.l.LogAttrs(ctx, level, msg, attrs...)
}

// builds the record message and attributes from a call's arguments
func compose(v any, args []any) (string, []slog.Attr) {
	switch val := v.(type) {
	case nil:
		return formatArgs(args), nil

	case error:
		msg := val.Error()
		if len(args) > 0 {
			msg = formatArgs(args)
		}

		return msg, []slog.Attr{slog.Any("error", val)}

	case string:
		if len(args) == 0 {
			return val, nil
		}

		return fmt.Sprintf(val, args...), nil

	case map[string]any:
		keys := sortedKeys(val)
		attrs := make([]slog.Attr, 0, len(keys))
		for _, k := range keys {
			attrs = append(attrs, slog.Any(k, val[k]))
		}

		return formatArgs(args), attrs

	default:
		return formatArgs(args), []slog.Attr{slog.Any("value", val)}
	}
}

// treats args[0] as a format string when it is one
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}

	if format, ok := args[0].(string); ok {
		if len(args) == 1 {
			return format
		}

		return fmt.Sprintf(format, args[1:]...)
	}

	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}

func fieldArgs(fields map[string]any) []any {
	keys := sortedKeys(fields)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}

	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
