// Package logger provides a simple structured logger
package logger

import (
	"fmt"
	"log"
	"os"
)

// Logger provides structured logging, scoped to a named subsystem so log
// records carry the {logger_name, level, message} fields the calculator and
// registry are expected to emit (e.g. "fit" vs "fit.linktracker").
type Logger struct {
	*log.Logger
	name    string
	enabled bool
}

// New creates a new named Logger instance.
func New(name string) *Logger {
	return &Logger{
		Logger:  log.New(os.Stdout, "", log.LstdFlags),
		name:    name,
		enabled: true,
	}
}

// NewNoop creates a no-op logger for testing.
func NewNoop(name string) *Logger {
	return &Logger{
		Logger:  log.New(os.Stdout, "", 0),
		name:    name,
		enabled: false,
	}
}

// Named returns a copy of l scoped to a different logger_name, sharing the
// underlying writer and enabled flag.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger, name: name, enabled: l.enabled}
}

// Debug logs debug-level messages with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if !l.enabled {
		return
	}
	l.logWithKV("DEBUG", msg, keysAndValues...)
}

// Info logs info-level messages with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	if !l.enabled {
		return
	}
	l.logWithKV("INFO", msg, keysAndValues...)
}

// Warn logs warning-level messages with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	if !l.enabled {
		return
	}
	l.logWithKV("WARN", msg, keysAndValues...)
}

// Error logs error-level messages with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	if !l.enabled {
		return
	}
	l.logWithKV("ERROR", msg, keysAndValues...)
}

// logWithKV formats and logs messages with key-value pairs
func (l *Logger) logWithKV(level, msg string, keysAndValues ...interface{}) {
	output := fmt.Sprintf("%s logger=%s %s", level, l.name, msg)

	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			output += " " + keysAndValues[i].(string) + "=" + formatValue(keysAndValues[i+1])
		}
	}

	l.Println(output)
}

// formatValue formats a value for logging
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int, int32, int64:
		return fmt.Sprint(val)
	case float32, float64:
		return fmt.Sprint(val)
	case error:
		return val.Error()
	default:
		return fmt.Sprint(val)
	}
}
