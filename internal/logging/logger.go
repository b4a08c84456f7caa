package logging

import (
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]interface{}

var logger atomic.Pointer[zap.Logger]

func init() {
	l, err := build(zapcore.InfoLevel)
	if err != nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func build(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Init replaces the process logger with one filtering at the given level
// ("debug", "info", "warn" or "error"). Unknown levels fall back to info.
func Init(level string) error {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		lvl = zapcore.InfoLevel
	}
	l, err := build(lvl)
	if err != nil {
		return err
	}
	if old := logger.Swap(l); old != nil {
		_ = old.Sync()
	}
	return nil
}

// SetLogger installs an already built logger, mostly useful for tests that
// want to observe output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Sync flushes buffered entries.
func Sync() {
	_ = logger.Load().Sync()
}

func toZap(fields Fields, err error) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	if err != nil {
		out = append(out, zap.Error(err))
	}
	return out
}

// Debug logs a diagnostic message with optional fields.
func Debug(msg string, fields Fields) {
	logger.Load().Debug(msg, toZap(fields, nil)...)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	logger.Load().Info(msg, toZap(fields, nil)...)
}

// Warn logs a recoverable problem.
func Warn(msg string, fields Fields) {
	logger.Load().Warn(msg, toZap(fields, nil)...)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	logger.Load().Error(msg, toZap(fields, err)...)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	l := logger.Load()
	l.Error(msg, toZap(fields, err)...)
	_ = l.Sync()
	os.Exit(1)
}
