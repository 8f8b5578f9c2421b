// Package logging provides structured logging for the tank game.
// It wraps Go's slog package with correlation and session IDs carried in the
// context, attribute redaction, and error wrapping helpers.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// LevelEnvVar selects the log level: DEBUG, INFO, WARN or ERROR.
const LevelEnvVar = "TANKGAME_LOG_LEVEL"

// Logger wraps slog.Logger with context-aware helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger on stdout. The level is read from
// TANKGAME_LOG_LEVEL and defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout, getLogLevelFromEnv())
}

// NewLoggerTo creates a JSON logger writing to w. Terminal front-ends use it to
// keep log output off the screen they draw on.
func NewLoggerTo(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: sanitizeAttributes,
	})
	return &Logger{slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewLoggerTo(io.Discard, slog.LevelError+1)
}

// LogWithContext logs msg with the correlation and session IDs found in ctx.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		args = append(args, "correlation_id", correlationID)
	}
	if sessionID := GetSessionID(ctx); sessionID != "" {
		args = append(args, "session_id", sessionID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type correlationIDKey struct{}

type sessionIDKey struct{}

// WithCorrelationID adds a correlation ID to the context, generating one when
// correlationID is empty.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	if correlationID == "" {
		correlationID = GenerateCorrelationID()
	}
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// GetCorrelationID returns the correlation ID in ctx, or "".
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID creates a short random ID for a single operation.
func GenerateCorrelationID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:16]
}

// WithSession tags ctx with a fresh session ID, one per simulation run.
func WithSession(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, sessionIDKey{}, id), id
}

// GetSessionID returns the session ID in ctx, or "".
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ParseLevel converts a level name to an slog.Level. Unknown names map to INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getLogLevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnvVar))
}

var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"token", "auth", "authorization",
	"secret", "private", "cookie",
}

// sanitizeAttributes masks values whose keys look like credentials.
func sanitizeAttributes(groups []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return slog.Attr{Key: a.Key, Value: slog.StringValue("[REDACTED]")}
		}
	}
	return a
}

// WrapError wraps err with a formatted context message. It returns nil for a
// nil err.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
