package lexer

import (
	"log/slog"

	"calclex/internal/diag"
)

type Options struct {
	// Reporter receives the failure of a scan as one diagnostic. May be nil.
	Reporter diag.Reporter
	// Logger receives debug records about each scan. May be nil.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
