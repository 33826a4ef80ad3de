package lint

import (
	"github.com/specvital/speclint/pkg/ast"
)

// Kind selects which definition form a Matcher looks for.
type Kind int

const (
	KindSuite Kind = iota
	KindTest
)

func (k Kind) String() string {
	if k == KindSuite {
		return "suite"
	}
	return "test"
}

// suiteVisitedKey marks suite calls already turned into a SuiteEntry.
const suiteVisitedKey = "suite-visited"

// Matcher selects suite and test invocations that still need processing.
type Matcher struct {
	suites     map[string]bool
	tests      map[string]bool
	checkerIDs []string
	marks      *ast.Marks
}

// NewMatcher returns a matcher bound to one pass's annotation table.
// A test node counts as processed once it carries every checker ID.
func NewMatcher(cfg Config, checkerIDs []string, marks *ast.Marks) *Matcher {
	return &Matcher{
		suites:     toSet(cfg.SuiteFuncs),
		tests:      toSet(cfg.TestFuncs),
		checkerIDs: checkerIDs,
		marks:      marks,
	}
}

// Match reports whether node is an unprocessed invocation of the given kind.
// Both the bare form (it('x')) and member forms (it.only('x'), it.skip('x'))
// are recognised.
func (m *Matcher) Match(node ast.Node, kind Kind) bool {
	names := m.tests
	if kind == KindSuite {
		names = m.suites
	}

	if !isInvocationOf(node, names) {
		return false
	}

	if kind == KindSuite {
		return !m.marks.Has(node, suiteVisitedKey)
	}
	return !m.marks.HasAll(node, m.checkerIDs)
}

func isInvocationOf(node ast.Node, names map[string]bool) bool {
	if node.Kind() != "call_expression" {
		return false
	}

	callee := node.Field("function")
	if callee == nil {
		return false
	}

	switch callee.Kind() {
	case "identifier":
		return names[callee.Text()]
	case "member_expression":
		object := callee.Field("object")
		return object != nil && object.Kind() == "identifier" && names[object.Text()]
	default:
		return false
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
