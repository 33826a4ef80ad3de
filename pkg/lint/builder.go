package lint

import (
	"github.com/specvital/speclint/pkg/ast"
	"github.com/specvital/speclint/pkg/domain"
)

// Builder turns one file's syntax tree into a suite forest.
// Its annotation table makes every (test, checker) pair evaluate at most
// once, however often a traversal passes over the same subtree. A Builder
// belongs to a single file and is not safe for concurrent use.
type Builder struct {
	checkers []Checker
	matcher  *Matcher
	marks    *ast.Marks
}

// NewBuilder returns a builder with a fresh annotation table.
func NewBuilder(cfg Config, checkers []Checker) *Builder {
	ids := make([]string, 0, len(checkers))
	for _, c := range checkers {
		ids = append(ids, c.ID())
	}

	marks := ast.NewMarks()

	return &Builder{
		checkers: checkers,
		matcher:  NewMatcher(cfg, ids, marks),
		marks:    marks,
	}
}

// Build collects every suite under root and prunes the issue-free ones.
func (b *Builder) Build(root ast.Node) []domain.SuiteEntry {
	return Clean(b.CollectSuites(root))
}

// CollectSuites returns the suites found under node in source order.
// Nested suites are resolved before later siblings. Tests inside a nested
// suite are attributed to that suite because it is processed first.
func (b *Builder) CollectSuites(node ast.Node) []domain.SuiteEntry {
	var suites []domain.SuiteEntry

	ast.Inspect(node, func(n ast.Node) {
		if !b.matcher.Match(n, KindSuite) {
			return
		}
		b.marks.Set(n, suiteVisitedKey)

		body := ast.Arg(n, 1)
		suites = append(suites, domain.SuiteEntry{
			Name:     ResolveName(n),
			Children: b.CollectSuites(body),
			Issues:   b.CollectTests(body),
		})
	})

	return suites
}

// CollectTests runs the checker pipeline once on every unprocessed test under container.
func (b *Builder) CollectTests(container ast.Node) []domain.Issue {
	var issues []domain.Issue

	ast.Inspect(container, func(n ast.Node) {
		if !b.matcher.Match(n, KindTest) {
			return
		}
		issues = append(issues, b.evaluate(n)...)
	})

	return issues
}

func (b *Builder) evaluate(test ast.Node) []domain.Issue {
	label := ResolveName(test)

	var issues []domain.Issue
	for _, c := range b.checkers {
		if b.marks.Has(test, c.ID()) {
			continue
		}
		issue := c.Evaluate(test)
		b.marks.Set(test, c.ID())
		if issue != nil {
			issue.Label = label
			issues = append(issues, *issue)
		}
	}
	return issues
}
