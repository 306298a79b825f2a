package logx

import (
	"context"
	"log"
	"strings"
)

type requestIDKey struct{}

// WithRequestID stores the request id so loggers created further down can pick it up.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request id from ctx, or "" when none was set.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var minLevel = levelInfo

// SetLevel sets the minimum level from LOG_LEVEL (debug, info, warn, error).
func SetLevel(s string) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		minLevel = levelDebug
	case "warn", "warning":
		minLevel = levelWarn
	case "error":
		minLevel = levelError
	default:
		minLevel = levelInfo
	}
}

// Logger provides structured logging scoped to one request
type Logger struct {
	requestID string
}

// New creates a logger with request context
func New(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

func (l *Logger) LogError(operation string, err error) {
	if minLevel > levelError {
		return
	}
	log.Printf("[error] request_id=%s operation=%s error=%v", l.requestID, operation, err)
}

func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.logf(levelError, "error", operation, format, args...)
}

func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.logf(levelInfo, "info", operation, format, args...)
}

func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.logf(levelWarn, "warn", operation, format, args...)
}

func (l *Logger) LogDebugf(operation string, format string, args ...interface{}) {
	l.logf(levelDebug, "debug", operation, format, args...)
}

func (l *Logger) logf(lv level, tag, operation, format string, args ...interface{}) {
	if lv < minLevel {
		return
	}
	log.Printf("["+tag+"] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}
