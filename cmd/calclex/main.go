package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"calclex/internal/logs"
	"calclex/internal/prof"
	"calclex/internal/project"
	"calclex/internal/version"
)

// errHasErrors сигнализирует об ошибочных диагностиках; сами диагностики уже напечатаны.
var errHasErrors = errors.New("diagnostics contain errors")

// app holds state resolved once per invocation in PersistentPreRunE.
type app struct {
	cfg        project.Config
	configPath string
	quiet      bool
	timings    bool
	logger     *slog.Logger
	closeLog   func() error
	profiling  *prof.Session
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{logger: logs.Discard()}

	rootCmd := &cobra.Command{
		Use:           "calclex",
		Short:         "Lexer for arithmetic expressions",
		Long:          `calclex splits arithmetic expressions into numbers, operators and parentheses`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().String("config", "", "path to calclex.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")

	rootCmd.AddCommand(newTokenizeCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	return rootCmd, a
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit status: 0 on success,
// 1 on any failure including lexing errors.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd, a := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	err = errors.Join(err, a.teardown())
	if err == nil {
		return 0
	}
	if !errors.Is(err, errHasErrors) {
		fmt.Fprintln(stderr, "calclex:", err)
	}
	return 1
}

// setup resolves configuration (defaults < calclex.toml < explicit flags) and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		found, ok, err := project.FindConfig(".")
		if err != nil {
			return err
		}
		if ok {
			configPath = found
		}
	}

	cfg := project.Default()
	if configPath != "" {
		if cfg, err = project.LoadConfig(configPath); err != nil {
			return err
		}
	}

	if flags.Changed("color") {
		cfg.Diagnostics.Color, _ = flags.GetString("color")
	}
	if flags.Changed("max-diagnostics") {
		cfg.Diagnostics.Max, _ = flags.GetInt("max-diagnostics")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.quiet, _ = flags.GetBool("quiet")
	a.timings, _ = flags.GetBool("timings")
	a.cfg = cfg
	a.configPath = configPath

	logger, closer, err := logs.New(cmd.ErrOrStderr(), logs.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closer

	if a.profiling, err = setupProfiling(cmd); err != nil {
		return err
	}
	a.logger.Debug("configured",
		slog.String("config", configPath),
		slog.String("format", cfg.Tokenize.Format),
		slog.Int("max_diagnostics", cfg.Diagnostics.Max),
	)
	return nil
}

func (a *app) teardown() (err error) {
	err = a.profiling.Stop()
	logs.CloseQuietly(a.closeLog, &err)
	a.closeLog = nil
	return err
}

// useColor решает, раскрашивать ли вывод в w.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isTerminal(f)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
