package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/speclint/pkg/domain"
)

func expects(n int) string {
	return strings.Repeat("expect(1).toBe(1);\n", n)
}

func TestCheckers_Evaluate(t *testing.T) {
	t.Parallel()

	cfg := Config{}
	applyDefaults(&cfg)

	tests := []struct {
		name    string
		checker Checker
		source  string
		want    *domain.Issue
	}{
		{
			name:    "empty title fires on empty literal",
			checker: emptyTitleChecker{},
			source:  "it('', () => {});",
			want:    &domain.Issue{Severity: domain.SeverityWarning, Message: "(empty test title)"},
		},
		{
			name:    "empty title ignores dynamic title",
			checker: emptyTitleChecker{},
			source:  "it(title, () => {});",
		},
		{
			name:    "isolation ignores clean body",
			checker: newIsolationChecker(cfg.IsolationProps),
			source:  "it('a', () => { expect(1).toBe(1); });",
		},
		{
			name:    "isolation fires once for many usages",
			checker: newIsolationChecker(cfg.IsolationProps),
			source:  "it('a', () => { sinon.stub(o, 'x'); sinon.spy(o, 'y'); o.x.restore(); });",
			want:    &domain.Issue{Severity: domain.SeverityError, Message: isolationMessage},
		},
		{
			name:    "isolation ignores bare identifiers",
			checker: newIsolationChecker(cfg.IsolationProps),
			source:  "it('a', () => { stub(o); const spy = 1; });",
		},
		{
			name:    "isolation uses configured members",
			checker: newIsolationChecker([]string{"mockImplementation"}),
			source:  "it('a', () => { fn.mockImplementation(() => 1); });",
			want:    &domain.Issue{Severity: domain.SeverityError, Message: "(`mockImplementation` used in the test body)"},
		},
		{
			name:    "density allows the threshold",
			checker: newDensityChecker(cfg.AssertionFunc, cfg.MaxAssertions),
			source:  "it('a', () => {\n" + expects(4) + "});",
		},
		{
			name:    "density fires above the threshold",
			checker: newDensityChecker(cfg.AssertionFunc, cfg.MaxAssertions),
			source:  "it('a', () => {\n" + expects(5) + "});",
			want: &domain.Issue{
				Severity: domain.SeverityWarning,
				Message:  "(too many assertions in the test — 5. Only 4 allowed)",
			},
		},
		{
			name:    "density ignores member assertions",
			checker: newDensityChecker(cfg.AssertionFunc, cfg.MaxAssertions),
			source:  "it('a', () => {\n" + strings.Repeat("chai.expect(1);\n", 6) + "});",
		},
		{
			name:    "density counts nested assertions",
			checker: newDensityChecker(cfg.AssertionFunc, 1),
			source:  "it('a', () => { list.forEach((n) => { expect(n).toBe(n); expect(n).not.toBe(0); }); });",
			want: &domain.Issue{
				Severity: domain.SeverityWarning,
				Message:  "(too many assertions in the test — 2. Only 1 allowed)",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.checker.Evaluate(firstCall(t, tt.source))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultCheckers(t *testing.T) {
	t.Parallel()

	ids := func(checkers []Checker) []string {
		var out []string
		for _, c := range checkers {
			out = append(out, c.ID())
		}
		return out
	}

	t.Run("should register all rules in pipeline order", func(t *testing.T) {
		t.Parallel()

		checkers, err := DefaultCheckers(Config{})
		require.NoError(t, err)
		assert.Equal(t, []string{CheckEmptyTitle, CheckIsolation, CheckAssertionDensity}, ids(checkers))
	})

	t.Run("should keep pipeline order for a selection", func(t *testing.T) {
		t.Parallel()

		checkers, err := DefaultCheckers(Config{Checks: []string{CheckAssertionDensity, CheckEmptyTitle}})
		require.NoError(t, err)
		assert.Equal(t, []string{CheckEmptyTitle, CheckAssertionDensity}, ids(checkers))
	})

	t.Run("should reject unknown ids", func(t *testing.T) {
		t.Parallel()

		_, err := DefaultCheckers(Config{Checks: []string{"zeta", "alpha"}})
		require.ErrorIs(t, err, ErrUnknownCheck)
		assert.Contains(t, err.Error(), "alpha, zeta")
	})

	t.Run("should describe every rule", func(t *testing.T) {
		t.Parallel()

		doc := CheckerDoc()
		for _, id := range CheckerIDs() {
			assert.Contains(t, doc, id)
		}
	})
}
