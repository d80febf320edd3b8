// Package logs builds the CLI logger: a text handler for the terminal,
// optionally fanned out to a JSON log file.
package logs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// File, when set, receives every record as JSON lines.
	File string
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// New returns a logger writing to terminal and, when opts.File is set, to that
// file. The returned closer releases the file and is never nil.
func New(terminal io.Writer, opts Options) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	lv, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	level.Set(lv)

	handlers := []slog.Handler{
		slog.NewTextHandler(terminal, &slog.HandlerOptions{Level: level}),
	}
	closer := func() error { return nil }

	if opts.File != "" {
		// #nosec G304 -- path comes from the user's flags or config
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		// файл получает всё, что прошло фильтр уровня
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closer = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// CloseQuietly runs closer and joins its error into errp.
func CloseQuietly(closer func() error, errp *error) {
	if closer == nil {
		return
	}
	*errp = errors.Join(*errp, closer())
}
