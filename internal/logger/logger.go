package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

// Init sets up the JSON logger on stdout at the given level (debug, info, warn, error)
func Init(level string) {
	InitWithWriter(os.Stdout, level)
}

// InitWithWriter is Init with an explicit destination, used by tests
func InitWithWriter(w io.Writer, level string) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	})

	Logger = slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogError logs an error with a message and optional key-value pairs
func LogError(msg string, err error, args ...any) {
	if Logger == nil {
		Init("info")
	}

	attrs := []any{"error", err}
	attrs = append(attrs, args...)
	Logger.Error(msg, attrs...)
}

// LogInfo logs an informational message with optional key-value pairs
func LogInfo(msg string, args ...any) {
	if Logger == nil {
		Init("info")
	}
	Logger.Info(msg, args...)
}

func LogWarn(msg string, args ...any) {
	if Logger == nil {
		Init("info")
	}
	Logger.Warn(msg, args...)
}

func LogDebug(msg string, args ...any) {
	if Logger == nil {
		Init("info")
	}
	Logger.Debug(msg, args...)
}
