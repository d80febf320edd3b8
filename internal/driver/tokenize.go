package driver

import (
	"errors"
	"fmt"
	"log/slog"

	"calclex/internal/diag"
	"calclex/internal/lexer"
	"calclex/internal/observ"
	"calclex/internal/source"
	"calclex/internal/token"
)

// Options are shared by every tokenize entry point.
type Options struct {
	MaxDiagnostics int
	// Timings enables per-phase timing in results.
	Timings bool
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens is nil when lexing failed; Err and Bag then describe the failure.
	Tokens []token.Token
	Err    error
	Bag    *diag.Bag
	Timing *observ.Report
}

// Tokenize loads path from disk and lexes it. Only load failures are returned
// as errors; lexing failures land in the result's Bag.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	timer := newTimer(opts)

	idx := timer.Begin(observ.PhaseLoad)
	fileID, err := fs.Load(path)
	if err != nil {
		timer.End(idx, "failed")
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	timer.End(idx, fmt.Sprintf("%d bytes", len(fs.Get(fileID).Content)))
	opts.logger().Debug("loaded", slog.String("path", path), slog.Int("bytes", len(fs.Get(fileID).Content)))

	return tokenizeFile(fs, fileID, timer, opts), nil
}

// TokenizeSource lexes in-memory content (stdin, an inline expression).
func TokenizeSource(name string, content []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return tokenizeFile(fs, fileID, newTimer(opts), opts)
}

func tokenizeFile(fs *source.FileSet, fileID source.FileID, timer *observ.Timer, opts Options) *TokenizeResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)

	idx := timer.Begin(observ.PhaseLex)
	lx := lexer.New(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Logger:   opts.Logger,
	})
	tokens, err := lx.Tokenize()
	timer.End(idx, lexNote(tokens, err))

	res := &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Err:     err,
		Bag:     bag,
	}
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}
	return res
}

func newTimer(opts Options) *observ.Timer {
	if !opts.Timings {
		return nil
	}
	return observ.NewTimer()
}

func lexNote(tokens []token.Token, err error) string {
	var lexErr *lexer.Error
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Value.Kind.String()
	case err != nil:
		return "failed"
	default:
		return fmt.Sprintf("%d tokens", len(tokens))
	}
}
