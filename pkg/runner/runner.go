// Package runner discovers test files from a glob pattern and lints them
// in parallel.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/speclint/pkg/domain"
	"github.com/specvital/speclint/pkg/lint"
	"github.com/specvital/speclint/pkg/parser"
)

const (
	// DefaultTimeout is the default run timeout.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
	// DefaultMaxFileSize is the default maximum file size (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// Error phases reported in ScanError.
const (
	PhaseDiscovery = "discovery"
	PhaseParsing   = "parsing"
)

// DefaultSkipPatterns contains directory names skipped during discovery.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
	"vendor",
	"dist",
	".next",
	"coverage",
	".cache",
}

var (
	// ErrEmptyPattern is returned when no glob pattern is given.
	ErrEmptyPattern = errors.New("runner: empty pattern")
	// ErrNoFiles is returned when the pattern matches no lintable file.
	ErrNoFiles = errors.New("runner: no files matched")
	// ErrScanCancelled is returned when the run is cancelled via context.
	ErrScanCancelled = errors.New("runner: scan cancelled")
	// ErrScanTimeout is returned when the run exceeds the timeout.
	ErrScanTimeout = errors.New("runner: scan timeout")
)

// Runner lints every file matched by a glob pattern.
type Runner struct {
	linter  *lint.Linter
	options *Options
}

// Result is the outcome of a run.
type Result struct {
	// Files holds one entry per linted file, sorted by path.
	Files []FileResult `json:"files" yaml:"files"`

	// Errors contains non-fatal per-file errors.
	Errors []ScanError `json:"-" yaml:"-"`

	// Stats describes the run.
	Stats Stats `json:"-" yaml:"-"`

	// Summary counts issues per severity across all files.
	Summary domain.Summary `json:"summary" yaml:"summary"`
}

// FileResult is the lint outcome of one file.
type FileResult struct {
	Path   string              `json:"path" yaml:"path"`
	Suites []domain.SuiteEntry `json:"suites,omitempty" yaml:"suites,omitempty"`
	Rows   []lint.Row          `json:"-" yaml:"-"`
}

// ScanError represents an error that occurred during a specific phase of a run.
type ScanError struct {
	// Err is the underlying error.
	Err error

	// Path is the file path where the error occurred (may be empty for non-file errors).
	Path string

	// Phase is PhaseDiscovery or PhaseParsing.
	Phase string
}

// Error implements the error interface.
func (e ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e ScanError) Unwrap() error {
	return e.Err
}

// Stats provides statistics about a run.
type Stats struct {
	// FilesFound is the number of files matched by the pattern.
	FilesFound int

	// FilesLinted is the number of files parsed and linted.
	FilesLinted int

	// FilesFailed is the number of files that could not be read or parsed.
	FilesFailed int

	// FilesSkipped is the number of matched files ignored for their
	// extension or size.
	FilesSkipped int

	// Duration is the total run duration.
	Duration time.Duration
}

// New creates a runner with the given options.
func New(opts ...Option) (*Runner, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	linter, err := lint.New(options.LintOptions...)
	if err != nil {
		return nil, err
	}

	return &Runner{linter: linter, options: options}, nil
}

// Run lints the files matched by pattern with a new Runner.
func Run(ctx context.Context, pattern string, opts ...Option) (*Result, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, pattern)
}

// Run performs the complete process:
//  1. Expand the glob pattern, skipping excluded directories
//  2. Parse and lint every file in parallel
//  3. Aggregate the per-file summaries
//
// The returned Result is usable even when an error is returned.
func (r *Runner) Run(ctx context.Context, pattern string) (*Result, error) {
	startTime := time.Now()
	logger := r.options.Logger

	result := &Result{
		Files:   []FileResult{},
		Errors:  []ScanError{},
		Summary: domain.Summary{},
	}

	if strings.TrimSpace(pattern) == "" {
		return result, ErrEmptyPattern
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return result, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	ctx, cancel := context.WithTimeout(ctx, r.options.Timeout)
	defer cancel()

	files, skipped, errs := r.discover(ctx, pattern)
	for _, err := range errs {
		result.Errors = append(result.Errors, ScanError{Err: err, Phase: PhaseDiscovery})
	}
	result.Stats.FilesFound = len(files) + skipped
	result.Stats.FilesSkipped = skipped

	logger.Info("files.found", "pattern", pattern, "files", len(files), "skipped", skipped)

	if len(files) == 0 {
		result.Stats.Duration = time.Since(startTime)
		if err := contextError(ctx); err != nil {
			return result, err
		}
		return result, ErrNoFiles
	}

	linted, scanErrors := r.lintFilesParallel(ctx, files)
	result.Files = linted
	result.Errors = append(result.Errors, scanErrors...)

	for _, f := range linted {
		result.Summary.Add(lint.Summarize(f.Suites))
	}

	result.Stats.FilesLinted = len(linted)
	result.Stats.FilesFailed = len(scanErrors)
	result.Stats.Duration = time.Since(startTime)

	logger.Info("run.done",
		"files", result.Stats.FilesLinted,
		"failed", result.Stats.FilesFailed,
		"issues", result.Summary.Total(),
		"elapsed", result.Stats.Duration,
	)

	if err := contextError(ctx); err != nil {
		return result, err
	}

	return result, nil
}

func contextError(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrScanTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrScanCancelled
	}
	return nil
}

// discover walks the static prefix of pattern and returns matching files
// in walk order, plus the number of matches ignored for extension or size.
func (r *Runner) discover(ctx context.Context, pattern string) ([]string, int, []error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	root := filepath.FromSlash(base)
	skipSet, excludeGlobs := buildExcludes(append(DefaultSkipPatterns, r.options.ExcludePatterns...))

	var (
		files   []string
		skipped int
		errs    []error
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, fmt.Errorf("access error at %s: %w", path, walkErr))
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("compute relative path for %s: %w", path, err))
			return nil
		}
		rel = filepath.ToSlash(rel)
		excluded := matchesAny(excludeGlobs, rel) || matchesAny(excludeGlobs, filepath.ToSlash(path))

		if d.IsDir() {
			if path != root && (skipSet[d.Name()] || excluded) {
				return filepath.SkipDir
			}
			return nil
		}

		if ok, _ := doublestar.Match(rest, rel); !ok || excluded {
			return nil
		}

		if !parser.IsSupported(path) {
			skipped++
			return nil
		}

		info, err := d.Info()
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to get file info for %s: %w", path, err))
			return nil
		}
		if info.Size() > r.options.MaxFileSize {
			skipped++
			return nil
		}

		files = append(files, path)
		return nil
	})

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		errs = append(errs, err)
	}

	return files, skipped, errs
}

func (r *Runner) lintFilesParallel(ctx context.Context, files []string) ([]FileResult, []ScanError) {
	workers := r.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu         sync.Mutex
		started    atomic.Int64
		results    = make([]FileResult, 0, len(files))
		scanErrors = make([]ScanError, 0)
	)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			r.options.Logger.Info("file.processing",
				"index", started.Add(1),
				"total", len(files),
				"path", file,
			)

			fileResult, scanErr := r.lintFile(gCtx, file)

			mu.Lock()
			defer mu.Unlock()

			if scanErr != nil {
				scanErrors = append(scanErrors, *scanErr)
				return nil
			}
			results = append(results, *fileResult)
			return nil
		})
	}

	_ = g.Wait()

	// Goroutines finish in arbitrary order.
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	sort.SliceStable(scanErrors, func(i, j int) bool {
		return scanErrors[i].Path < scanErrors[j].Path
	})

	return results, scanErrors
}

func (r *Runner) lintFile(ctx context.Context, path string) (*FileResult, *ScanError) {
	if err := ctx.Err(); err != nil {
		return nil, &ScanError{Err: err, Path: path, Phase: PhaseParsing}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScanError{Err: fmt.Errorf("read file: %w", err), Path: path, Phase: PhaseParsing}
	}

	file, err := parser.Parse(ctx, path, content)
	if err != nil {
		return nil, &ScanError{Err: err, Path: path, Phase: PhaseParsing}
	}
	defer file.Close()

	report := r.linter.Lint(file.Root())

	return &FileResult{
		Path:   path,
		Suites: report.Suites,
		Rows:   report.Rows,
	}, nil
}

// buildExcludes splits patterns into plain directory names and path globs.
func buildExcludes(patterns []string) (map[string]bool, []string) {
	skipSet := make(map[string]bool, len(patterns))
	var globs []string
	for _, p := range patterns {
		if strings.ContainsAny(p, "*?[{") {
			globs = append(globs, filepath.ToSlash(p))
			continue
		}
		skipSet[p] = true
	}
	return skipSet, globs
}

func matchesAny(globs []string, slashPath string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, slashPath); ok {
			return true
		}
	}
	return false
}
