package runner

import (
	"log/slog"
	"time"

	"github.com/specvital/speclint/pkg/lint"
)

// Options configures a Runner.
type Options struct {
	// ExcludePatterns are skipped during discovery, combined with
	// DefaultSkipPatterns. A pattern without glob metacharacters matches a
	// directory name anywhere in the tree; any other pattern is matched
	// against the slash-separated file path with doublestar semantics.
	ExcludePatterns []string

	// Logger receives progress events. Nil uses slog.Default().
	Logger *slog.Logger

	// LintOptions configure the linter used for every file.
	LintOptions []lint.Option

	// MaxFileSize is the maximum file size in bytes to process.
	// Larger files are counted as skipped.
	MaxFileSize int64

	// Timeout is the maximum duration for the whole run.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers is the number of files linted concurrently.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring a Runner.
type Option func(*Options)

// WithWorkers sets the number of concurrent workers.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the run timeout. Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithExcludePatterns adds directory names or path globs to skip.
func WithExcludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.ExcludePatterns = patterns
	}
}

// WithMaxFileSize sets the maximum file size to process.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

// WithLogger sets the logger for progress events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithLintOptions passes options through to lint.New.
func WithLintOptions(opts ...lint.Option) Option {
	return func(o *Options) {
		o.LintOptions = append(o.LintOptions, opts...)
	}
}

func applyDefaults(opts *Options) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
}
