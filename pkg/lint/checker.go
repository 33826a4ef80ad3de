package lint

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/specvital/speclint/pkg/ast"
	"github.com/specvital/speclint/pkg/domain"
)

// ErrUnknownCheck is returned when a selected check ID is not registered.
var ErrUnknownCheck = errors.New("lint: unknown check")

// Checker IDs of the built-in rules.
const (
	CheckEmptyTitle       = "empty-title"
	CheckIsolation        = "isolation"
	CheckAssertionDensity = "assertion-density"
)

// Checker is a single rule evaluated against one test call.
// Evaluate returns nil when the rule does not fire. The pipeline stamps
// the issue's Label, so checkers leave it unset.
type Checker interface {
	ID() string
	Evaluate(test ast.Node) *domain.Issue
}

type registration struct {
	id  string
	doc string
	new func(Config) Checker
}

// registry holds the built-in rules in pipeline order.
var registry = []registration{
	{
		id:  CheckEmptyTitle,
		doc: "test title is an empty string literal",
		new: func(Config) Checker { return emptyTitleChecker{} },
	},
	{
		id:  CheckIsolation,
		doc: "mock lifecycle members (restore/spy/stub) used inside a test body",
		new: func(cfg Config) Checker { return newIsolationChecker(cfg.IsolationProps) },
	},
	{
		id:  CheckAssertionDensity,
		doc: "test makes more assertions than allowed",
		new: func(cfg Config) Checker { return newDensityChecker(cfg.AssertionFunc, cfg.MaxAssertions) },
	},
}

// CheckerIDs returns the IDs of all registered rules in pipeline order.
func CheckerIDs() []string {
	ids := make([]string, 0, len(registry))
	for _, r := range registry {
		ids = append(ids, r.id)
	}
	return ids
}

// CheckerDoc returns a one-line-per-rule description suitable for help text.
func CheckerDoc() string {
	var sb strings.Builder
	for _, r := range registry {
		fmt.Fprintf(&sb, "  %-18s %s\n", r.id, r.doc)
	}
	return sb.String()
}

// DefaultCheckers builds the rules selected by cfg.Checks, in pipeline order.
func DefaultCheckers(cfg Config) ([]Checker, error) {
	selected := make(map[string]bool, len(cfg.Checks))
	for _, id := range cfg.Checks {
		selected[id] = true
	}

	var checkers []Checker
	for _, r := range registry {
		if len(selected) > 0 && !selected[r.id] {
			continue
		}
		checkers = append(checkers, r.new(cfg))
		delete(selected, r.id)
	}

	if len(selected) > 0 {
		unknown := make([]string, 0, len(selected))
		for id := range selected {
			unknown = append(unknown, id)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, strings.Join(unknown, ", "))
	}

	return checkers, nil
}

type emptyTitleChecker struct{}

func (emptyTitleChecker) ID() string { return CheckEmptyTitle }

func (emptyTitleChecker) Evaluate(test ast.Node) *domain.Issue {
	if !ResolveName(test).IsEmpty() {
		return nil
	}
	return &domain.Issue{
		Severity: domain.SeverityWarning,
		Message:  "(empty test title)",
	}
}

// isolationChecker flags mock setup or teardown done inside the test body
// instead of in before/after hooks.
type isolationChecker struct {
	props   map[string]bool
	message string
}

func newIsolationChecker(props []string) isolationChecker {
	return isolationChecker{
		props:   toSet(props),
		message: fmt.Sprintf("(`%s` used in the test body)", strings.Join(props, "/")),
	}
}

func (isolationChecker) ID() string { return CheckIsolation }

func (c isolationChecker) Evaluate(test ast.Node) *domain.Issue {
	if c.count(test) == 0 {
		return nil
	}
	return &domain.Issue{
		Severity: domain.SeverityError,
		Message:  c.message,
	}
}

// count uses marks local to this traversal only.
func (c isolationChecker) count(test ast.Node) int {
	counted := ast.NewMarks()
	n := 0
	ast.Inspect(test, func(node ast.Node) {
		if node.Kind() != "member_expression" || !c.props[ast.TextAt(node, "property")] {
			return
		}
		if counted.Has(node, CheckIsolation) {
			return
		}
		counted.Set(node, CheckIsolation)
		n++
	})
	return n
}

type densityChecker struct {
	assertion string
	max       int
}

func newDensityChecker(assertion string, limit int) densityChecker {
	return densityChecker{assertion: assertion, max: limit}
}

func (densityChecker) ID() string { return CheckAssertionDensity }

func (c densityChecker) Evaluate(test ast.Node) *domain.Issue {
	n := c.count(test)
	if n <= c.max {
		return nil
	}
	return &domain.Issue{
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("(too many assertions in the test — %d. Only %d allowed)", n, c.max),
	}
}

// count uses marks local to this traversal only.
func (c densityChecker) count(test ast.Node) int {
	counted := ast.NewMarks()
	n := 0
	ast.Inspect(test, func(node ast.Node) {
		if node.Kind() != "call_expression" {
			return
		}
		callee := node.Field("function")
		if callee == nil || callee.Kind() != "identifier" || callee.Text() != c.assertion {
			return
		}
		if counted.Has(node, CheckAssertionDensity) {
			return
		}
		counted.Set(node, CheckAssertionDensity)
		n++
	})
	return n
}
