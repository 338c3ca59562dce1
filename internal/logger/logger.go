package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"codeberg.org/algorave/errhandler/internal/config"
	"codeberg.org/algorave/errhandler/logging"
)

var (
	// default logger instance
	defaultLogger *slog.Logger
)

// initializes the logger based on environment
func init() {
	level := slog.LevelInfo
	if l, err := logging.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		level = l
	}

	defaultLogger = slog.New(newHandler(os.Getenv("ENV_NAME") == config.DevEnvironment, level, os.Stderr))
}

// replaces the default logger with one configured from cfg
func Setup(cfg *config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}

	out := io.Writer(os.Stdout)
	if cfg.IsDevelopment() {
		out = os.Stderr
	}

	defaultLogger = slog.New(newHandler(cfg.IsDevelopment(), level, out))
	slog.SetDefault(defaultLogger)

	return defaultLogger
}

func newHandler(dev bool, level slog.Level, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logging.ReplaceAttr,
	}

	if dev {
		// development: colored console output
		return logging.NewConsoleHandler(w, opts)
	}

	// production: JSON output for structured logging
	return slog.NewJSONHandler(w, opts)
}

// returns the default logger instance
func Default() *slog.Logger {
	return defaultLogger
}

// returns the default logger as the dispatch logger capability
func Capability() logging.Logger {
	return logging.NewSlog(defaultLogger)
}

// creates a logger with additional context fields
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

// creates a logger with context
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	// extract any logger from context if present
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// adds logger to context
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// helper type for context key
type loggerKey struct{}

// logs an info message
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
}

// logs a fatal error and exits (for CLI tools)
func Fatal(msg string, args ...any) {
	defaultLogger.Log(context.Background(), logging.LevelFatal, msg, args...)
	os.Exit(1)
}
