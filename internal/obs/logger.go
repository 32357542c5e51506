// Package obs sets up the process-wide structured logger the CLI and
// library plumbing share. Adapted from an MCP server's logger Init/Config
// pattern, scaled down to what a single-process CLI tool needs: level and
// format, no buffering or request-scoped context keys.
package obs

import (
	"io"
	"log/slog"
	"os"
)

// Config controls how the default logger is constructed.
type Config struct {
	// Level is the minimum level that will be emitted.
	Level slog.Level
	// Format is "json" or "text".
	Format string
	// Output defaults to os.Stderr when nil.
	Output io.Writer
}

// DefaultConfig returns a logger configuration matching vitectl's flag
// defaults: info level, text format, standard error.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// Init installs cfg as the process-wide default logger and returns it,
// so callers can also hold a handle without going through slog.Default.
func Init(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
