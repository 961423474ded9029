package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	slogctx "github.com/veqryn/slog-context"
)

// New returns a logger writing to w in the given format ("text" or "json").
// Attributes added to a context with slogctx.Append appear on every record
// logged with that context.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(slogctx.NewHandler(h, nil))
}

// ParseLevel accepts debug, info, warn/warning and error, case-insensitively.
// An empty string means info.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", raw)
	}
}
