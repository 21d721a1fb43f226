package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/infrastructure/config"
)

// ParseLevel converts a configured level name into a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// NewLogger builds the application logger. The returned closer releases the
// log file and is a no-op for console output.
func NewLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer
	closer := io.Closer(nopCloser{})
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = file
		closer = file
	default:
		out = os.Stderr
	}

	return New(out, cfg.Format, level, cfg.IncludeCaller), closer, nil
}

// New builds a logger writing to out in the given format (json or text)
func New(out io.Writer, format string, level slog.Level, includeCaller bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level, AddSource: includeCaller}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
