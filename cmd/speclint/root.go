package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/specvital/speclint/pkg/lint"
	"github.com/specvital/speclint/pkg/report"
	"github.com/specvital/speclint/pkg/runner"
)

// errFilesFailed makes the process exit non-zero when some files could
// not be linted. Findings alone never do.
var errFilesFailed = errors.New("some files could not be linted")

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "speclint -p GLOB_PATTERN [flags]",
		Short: "Lint describe/it test files for structural problems",
		Long: `speclint inspects BDD-style JavaScript and TypeScript test files
(describe / it) and reports, per file, a table of suites and the tests
that break a rule.

Findings never change the exit code. The process exits 1 only when the
invocation is wrong or a file could not be read or parsed.

Available checks (use --checks to select specific ones):
` + lint.CheckerDoc() + `
Configuration is read from .speclint.yaml in the working directory or the
home directory, and from SPECLINT_* environment variables
(e.g. SPECLINT_MAX_ASSERTIONS=6).

Examples:
  speclint -p 'test/**/*.js'                       # Lint every test under test/
  speclint -p 'src/**/*.spec.ts' -f report.txt     # Write the report to a file
  speclint -p '**/*.test.js' --format json         # Machine-readable output
  speclint -p '**/*.test.js' --checks isolation    # Run only specific checks
  speclint --list                                  # List available checks`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd, cfgFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.speclint.yaml, then $HOME/.speclint.yaml)")
	flags.StringP("pattern", "p", "", "(required) glob pattern for files that should be linted")
	flags.StringP("file", "f", "", "write the report to this file instead of stdout")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("color", string(report.ColorAuto), `control colored output: "auto", "always", or "never"`)
	flags.String("format", string(report.FormatTable), "output format: table, json or yaml")
	flags.StringSlice("checks", nil, "comma-separated list of checks to run (default all)")
	flags.Bool("list", false, "list available checks and exit")
	flags.Int("max-assertions", lint.DefaultMaxAssertions, "assertions allowed per test")
	flags.StringSlice("exclude", nil, "directory names or path globs to skip")
	flags.Int("workers", 0, "files linted concurrently (default GOMAXPROCS)")
	flags.Duration("timeout", runner.DefaultTimeout, "maximum duration of the whole run")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cmd *cobra.Command, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".speclint")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("SPECLINT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	if v.GetBool("list") {
		for _, id := range lint.CheckerIDs() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	}

	pattern := v.GetString("pattern")
	if pattern == "" {
		return errors.New(`required flag "pattern" not set`)
	}

	format, err := report.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), v.GetBool("verbose"))
	if path := v.ConfigFileUsed(); path != "" {
		logger.Debug("config.loaded", "path", path)
	}

	startTime := time.Now()

	result, err := runner.Run(cmd.Context(), pattern,
		runner.WithLogger(logger),
		runner.WithWorkers(v.GetInt("workers")),
		runner.WithTimeout(v.GetDuration("timeout")),
		runner.WithExcludePatterns(v.GetStringSlice("exclude")),
		runner.WithLintOptions(
			lint.WithChecks(v.GetStringSlice("checks")...),
			lint.WithMaxAssertions(v.GetInt("max-assertions")),
		),
	)
	switch {
	case errors.Is(err, runner.ErrNoFiles):
		logger.Warn("no files matched", "pattern", pattern)
	case err != nil:
		return err
	}

	for _, scanErr := range result.Errors {
		logger.Error("file.failed", "path", scanErr.Path, "phase", scanErr.Phase, "err", scanErr.Err)
	}

	if err := writeReport(cmd, v, format, result); err != nil {
		return err
	}

	logger.Info("execution time", "elapsed", time.Since(startTime))

	if len(result.Errors) > 0 {
		return errFilesFailed
	}
	return nil
}

func writeReport(cmd *cobra.Command, v *viper.Viper, format report.Format, result *runner.Result) error {
	mode, err := colorMode(v)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if path := v.GetString("file"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		out = f

		if mode == report.ColorAuto {
			mode = report.ColorNever
		}
	}

	if err := report.Render(out, result, report.Options{Format: format, Color: mode}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func colorMode(v *viper.Viper) (report.ColorMode, error) {
	if v.GetBool("no-color") {
		return report.ColorNever, nil
	}

	switch mode := report.ColorMode(strings.ToLower(v.GetString("color"))); mode {
	case report.ColorAuto, report.ColorAlways, report.ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (want auto, always or never)", mode)
	}
}
