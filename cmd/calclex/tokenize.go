package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"calclex/internal/diag"
	"calclex/internal/diagfmt"
	"calclex/internal/driver"
	"calclex/internal/source"
	"calclex/internal/token"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] [file]",
		Short: "Tokenize an arithmetic expression",
		Long: `Tokenize splits an expression into tokens. The expression is read from
the file argument, from --expr, or from stdin when neither is given.
With --dir every matching file under the directory is tokenized in parallel.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokenize(cmd, args)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().StringP("expr", "e", "", "tokenize this expression instead of a file")
	cmd.Flags().String("dir", "", "tokenize every matching file under this directory")
	cmd.Flags().String("ext", ".calc", "file extension used with --dir")
	cmd.Flags().Int("jobs", 0, "parallel workers for --dir (0 = GOMAXPROCS)")
	cmd.Flags().String("ui", "auto", "progress UI for --dir (auto|on|off)")
	cmd.Flags().Bool("short", false, "print diagnostics one per line")
	return cmd
}

func (a *app) runTokenize(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	cfg := a.cfg
	if flags.Changed("format") {
		cfg.Tokenize.Format, _ = flags.GetString("format")
	}
	if flags.Changed("ext") {
		cfg.Tokenize.Extension, _ = flags.GetString("ext")
	}
	if flags.Changed("jobs") {
		cfg.Tokenize.Jobs, _ = flags.GetInt("jobs")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	short, _ := flags.GetBool("short")
	dir, _ := flags.GetString("dir")
	expr, _ := flags.GetString("expr")
	exprSet := flags.Changed("expr")

	out := &tokenizeOutput{
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		format: cfg.Tokenize.Format,
		short:  short,
		color:  useColor(cfg.Diagnostics.Color, cmd.ErrOrStderr()),
		quiet:  a.quiet,
	}
	opts := driver.Options{
		MaxDiagnostics: cfg.Diagnostics.Max,
		Timings:        a.timings,
		Logger:         a.logger,
	}

	if dir != "" {
		if exprSet || len(args) > 0 {
			return errors.New("--dir cannot be combined with a file argument or --expr")
		}
		uiFlag, _ := flags.GetString("ui")
		mode, err := readUIMode(uiFlag)
		if err != nil {
			return err
		}
		dirOpts := driver.DirOptions{
			Options: opts,
			Ext:     cfg.Tokenize.Extension,
			Jobs:    cfg.Tokenize.Jobs,
		}
		return a.runTokenizeDir(cmd.Context(), dir, dirOpts, shouldUseTUI(mode, a.quiet, cmd.ErrOrStderr()), out)
	}

	var res *driver.TokenizeResult
	switch {
	case exprSet && len(args) > 0:
		return errors.New("--expr cannot be combined with a file argument")
	case exprSet:
		res = driver.TokenizeSource("<expr>", []byte(expr), opts)
	case len(args) == 1:
		var err error
		if res, err = driver.Tokenize(args[0], opts); err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	default:
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		res = driver.TokenizeSource("<stdin>", content, opts)
	}

	if err := out.diagnostics(res.Bag, res.FileSet); err != nil {
		return err
	}
	if res.Timing != nil && !a.quiet {
		printTimings(out.stderr, *res.Timing)
	}
	if res.Bag.HasErrors() {
		return errHasErrors
	}
	return out.tokens(res.Tokens, res.FileSet, res.File.ID)
}

func (a *app) runTokenizeDir(ctx context.Context, dir string, opts driver.DirOptions, withUI bool, out *tokenizeOutput) error {
	files, err := driver.ListFiles(dir, opts.Ext)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}

	started := time.Now()
	var (
		fs      *source.FileSet
		results []driver.TokenizeDirResult
	)
	if withUI {
		fs, results, err = runTokenizeDirWithUI(ctx, "tokenize "+dir, dir, files, opts)
	} else {
		fs, results, err = driver.TokenizeFiles(ctx, dir, files, opts)
	}
	if err != nil {
		return err
	}
	a.logger.Debug("tokenized directory",
		slog.String("dir", dir),
		slog.Int("files", len(results)),
		slog.Duration("elapsed", time.Since(started)),
	)

	bag := diag.NewBag(opts.MaxDiagnostics)
	outputs := make([]diagfmt.FileTokensOutput, 0, len(results))
	for _, r := range results {
		bag.Merge(r.Bag)
		if r.Bag.HasErrors() {
			continue
		}
		outputs = append(outputs, diagfmt.FileTokensOutput{
			File:   fs.Get(r.FileID).DisplayPath(fs.BaseDir()),
			Tokens: diagfmt.BuildTokenOutput(r.Tokens, fs, r.FileID),
		})
	}
	bag.Sort()

	if err := out.diagnostics(bag, fs); err != nil {
		return err
	}
	if opts.Timings && !out.quiet {
		fmt.Fprintf(out.stderr, "tokenized %d files in %.1f ms\n", len(results), toMillis(time.Since(started)))
	}
	if err := out.files(results, outputs, fs); err != nil {
		return err
	}
	if bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

type tokenizeOutput struct {
	stdout, stderr io.Writer
	format         string
	short          bool
	color          bool
	quiet          bool
}

func (o *tokenizeOutput) diagnostics(bag *diag.Bag, fs *source.FileSet) error {
	if bag.Len() == 0 {
		return nil
	}
	if o.short {
		_, err := fmt.Fprintln(o.stderr, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	}
	if o.format == "json" {
		return diagfmt.JSON(o.stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	}
	return diagfmt.Pretty(o.stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     o.color,
		Context:   2,
		ShowNotes: true,
	})
}

func (o *tokenizeOutput) tokens(tokens []token.Token, fs *source.FileSet, fileID source.FileID) error {
	if o.quiet {
		return nil
	}
	switch o.format {
	case "pretty":
		return diagfmt.FormatTokensPretty(o.stdout, tokens, fs, fileID)
	case "json":
		return diagfmt.FormatTokensJSON(o.stdout, tokens, fs, fileID)
	case "msgpack":
		return diagfmt.FormatTokensMsgpack(o.stdout, tokens, fs, fileID)
	default:
		return fmt.Errorf("unknown format: %s", o.format)
	}
}

// files prints the tokens of every successfully lexed file.
func (o *tokenizeOutput) files(results []driver.TokenizeDirResult, outputs []diagfmt.FileTokensOutput, fs *source.FileSet) error {
	if o.quiet {
		return nil
	}
	switch o.format {
	case "pretty":
		for _, r := range results {
			if r.Bag.HasErrors() {
				continue
			}
			if _, err := fmt.Fprintf(o.stdout, "== %s ==\n", fs.Get(r.FileID).DisplayPath(fs.BaseDir())); err != nil {
				return err
			}
			if err := diagfmt.FormatTokensPretty(o.stdout, r.Tokens, fs, r.FileID); err != nil {
				return err
			}
		}
		return nil
	case "json":
		return diagfmt.FormatFilesJSON(o.stdout, outputs)
	case "msgpack":
		return diagfmt.FormatFilesMsgpack(o.stdout, outputs)
	default:
		return fmt.Errorf("unknown format: %s", o.format)
	}
}
