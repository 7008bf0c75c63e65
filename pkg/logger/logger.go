// Package logger carries AdBrain's diagnostic logging. Session and gateway
// code log through the Logger interface; the CLI picks a text or zap backend.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Logger receives diagnostic events. obj is usually a map[string]any of
// fields such as session_id and mode.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

// writerLogger prints one line per event: timestamp, level, message, then
// fields as sorted key=value pairs.
type writerLogger struct {
	w   io.Writer
	now func() time.Time
}

// NewWriterLogger builds a text logger for stderr-style output.
func NewWriterLogger(w io.Writer) Logger {
	return writerLogger{w: w, now: time.Now}
}

func (l writerLogger) Info(msg string, obj any)  { l.write("INFO", msg, obj) }
func (l writerLogger) Warn(msg string, obj any)  { l.write("WARN", msg, obj) }
func (l writerLogger) Debug(msg string, obj any) { l.write("DEBUG", msg, obj) }
func (l writerLogger) Error(msg string, obj any) { l.write("ERROR", msg, obj) }

func (l writerLogger) write(level, msg string, obj any) {
	if l.w == nil {
		return
	}
	line := fmt.Sprintf("%s %-5s %s", l.now().Format(time.RFC3339), level, msg)
	if tail := formatFields(obj); tail != "" {
		line += " " + tail
	}
	_, _ = fmt.Fprintln(l.w, line)
}

func formatFields(obj any) string {
	switch v := obj.(type) {
	case nil:
		return ""
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+formatValue(v[k]))
		}
		return strings.Join(parts, " ")
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("obj=%q", fmt.Sprintf("%+v", v))
		}
		return "obj=" + string(b)
	}
}

func formatValue(v any) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// zapLogger adapts a *zap.Logger to Logger. Map payloads become one zap field
// per key; anything else is attached as "obj".
type zapLogger struct {
	z *zap.Logger
}

// NewZapLogger wraps z. A nil z yields a no-op zap logger.
func NewZapLogger(z *zap.Logger) Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return zapLogger{z: z}
}

func (l zapLogger) fields(obj any) []zap.Field {
	switch v := obj.(type) {
	case nil:
		return nil
	case map[string]any:
		fields := make([]zap.Field, 0, len(v))
		for k, val := range v {
			fields = append(fields, zap.Any(k, val))
		}
		return fields
	default:
		return []zap.Field{zap.Any("obj", v)}
	}
}

func (l zapLogger) Info(msg string, obj any)  { l.z.Info(msg, l.fields(obj)...) }
func (l zapLogger) Warn(msg string, obj any)  { l.z.Warn(msg, l.fields(obj)...) }
func (l zapLogger) Debug(msg string, obj any) { l.z.Debug(msg, l.fields(obj)...) }
func (l zapLogger) Error(msg string, obj any) { l.z.Error(msg, l.fields(obj)...) }

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Debugf formats msg and logs it without fields.
func Debugf(enabled bool, logger Logger, format string, args ...any) {
	Debug(enabled, logger, fmt.Sprintf(format, args...), nil)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
