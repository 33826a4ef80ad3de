// Package lint finds structural problems in BDD-style test files.
//
// A Builder walks a file's syntax tree, matches suite (describe) and test
// (it) invocations and runs the checker pipeline once per test. The result
// is a forest of SuiteEntry values that Clean prunes down to the suites
// with findings, Flatten turns into table rows and Summarize counts per
// severity.
package lint

import (
	"github.com/specvital/speclint/pkg/ast"
	"github.com/specvital/speclint/pkg/domain"
)

// Linter holds a resolved configuration and its checker pipeline.
// A Linter is safe for concurrent use; every Lint call gets its own Builder.
type Linter struct {
	cfg      Config
	checkers []Checker
}

// Report is the outcome of linting one file.
type Report struct {
	Suites  []domain.SuiteEntry
	Rows    []Row
	Summary domain.Summary
}

// New creates a linter with the given options.
func New(opts ...Option) (*Linter, error) {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	applyDefaults(&cfg)

	checkers, err := DefaultCheckers(cfg)
	if err != nil {
		return nil, err
	}

	return &Linter{cfg: cfg, checkers: checkers}, nil
}

// Config returns the resolved configuration.
func (l *Linter) Config() Config {
	return l.cfg
}

// Checkers returns the pipeline in evaluation order.
func (l *Linter) Checkers() []Checker {
	return l.checkers
}

// NewBuilder returns a builder with a fresh annotation table.
func (l *Linter) NewBuilder() *Builder {
	return NewBuilder(l.cfg, l.checkers)
}

// Lint builds, cleans and flattens the forest for one file's root node.
func (l *Linter) Lint(root ast.Node) Report {
	suites := l.NewBuilder().Build(root)
	return Report{
		Suites:  suites,
		Rows:    Flatten(suites),
		Summary: Summarize(suites),
	}
}
