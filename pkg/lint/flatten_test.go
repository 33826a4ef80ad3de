package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/speclint/pkg/domain"
)

func warn(label domain.NodeName, msg string) domain.Issue {
	return domain.Issue{Severity: domain.SeverityWarning, Message: msg, Label: label}
}

func fail(label domain.NodeName, msg string) domain.Issue {
	return domain.Issue{Severity: domain.SeverityError, Message: msg, Label: label}
}

func rowText(rows []Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, 0, len(r))
		for _, c := range r {
			cells = append(cells, c.String())
		}
		out = append(out, cells)
	}
	return out
}

func TestClean(t *testing.T) {
	t.Parallel()

	issue := warn(domain.Literal("t"), "m")
	forest := []domain.SuiteEntry{
		{Name: domain.Literal("empty")},
		{
			Name: domain.Literal("A"),
			Children: []domain.SuiteEntry{
				{Name: domain.Literal("hollow"), Children: []domain.SuiteEntry{{Name: domain.Literal("deep")}}},
				{Name: domain.Literal("B"), Issues: []domain.Issue{issue}},
			},
			Issues: []domain.Issue{},
		},
	}

	cleaned := Clean(forest)

	want := []domain.SuiteEntry{
		{
			Name: domain.Literal("A"),
			Children: []domain.SuiteEntry{
				{Name: domain.Literal("B"), Issues: []domain.Issue{issue}},
			},
		},
	}
	assert.Equal(t, want, cleaned)
	assert.Nil(t, cleaned[0].Issues)
	assert.Len(t, forest[1].Children, 2, "input must not be modified")

	t.Run("is idempotent", func(t *testing.T) {
		assert.Equal(t, cleaned, Clean(cleaned))
	})

	t.Run("returns nil when nothing remains", func(t *testing.T) {
		assert.Nil(t, Clean([]domain.SuiteEntry{{Name: domain.Literal("x")}}))
		assert.Nil(t, Clean(nil))
	})
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		forest []domain.SuiteEntry
		want   [][]string
	}{
		{
			name: "single nested issue",
			forest: []domain.SuiteEntry{{
				Name: domain.Literal("A"),
				Children: []domain.SuiteEntry{{
					Name:   domain.Literal("B"),
					Issues: []domain.Issue{warn(domain.Literal("t"), "(m)")},
				}},
			}},
			want: [][]string{{"A", "B", "t (m)"}},
		},
		{
			name: "identical rows are kept one per issue",
			forest: []domain.SuiteEntry{{
				Name: domain.Literal("A"),
				Issues: []domain.Issue{
					warn(domain.EmptyName(), "(empty test title)"),
					fail(domain.Literal("x"), "(e)"),
					warn(domain.EmptyName(), "(empty test title)"),
				},
			}},
			want: [][]string{
				{"A", "(empty) (empty test title)"},
				{"A", "x (e)"},
				{"A", "(empty) (empty test title)"},
			},
		},
		{
			name: "same text with different severity stays",
			forest: []domain.SuiteEntry{{
				Name: domain.Literal("A"),
				Issues: []domain.Issue{
					warn(domain.Literal("t"), "(m)"),
					fail(domain.Literal("t"), "(m)"),
				},
			}},
			want: [][]string{{"A", "t (m)"}, {"A", "t (m)"}},
		},
		{
			name: "sentinel and look-alike literal stay apart",
			forest: []domain.SuiteEntry{
				{Name: domain.DynamicName(), Issues: []domain.Issue{warn(domain.Literal("t"), "(m)")}},
				{Name: domain.Literal("(dynamic)"), Issues: []domain.Issue{warn(domain.Literal("t"), "(m)")}},
			},
			want: [][]string{{"(dynamic)", "t (m)"}, {"(dynamic)", "t (m)"}},
		},
		{
			name: "source order across many siblings",
			forest: func() []domain.SuiteEntry {
				var issues []domain.Issue
				for _, label := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
					issues = append(issues, warn(domain.Literal(label), "(m)"))
				}
				return []domain.SuiteEntry{{Name: domain.Literal("S"), Issues: issues}}
			}(),
			want: [][]string{
				{"S", "a (m)"}, {"S", "b (m)"}, {"S", "c (m)"}, {"S", "d (m)"},
				{"S", "e (m)"}, {"S", "f (m)"}, {"S", "g (m)"}, {"S", "h (m)"},
				{"S", "i (m)"}, {"S", "j (m)"}, {"S", "k (m)"}, {"S", "l (m)"},
			},
		},
		{
			name: "issue-free leaf suite yields no row",
			forest: []domain.SuiteEntry{{
				Name:     domain.Literal("A"),
				Children: []domain.SuiteEntry{{Name: domain.Literal("hollow")}},
				Issues:   []domain.Issue{warn(domain.Literal("t"), "(m)")},
			}},
			want: [][]string{{"A", "t (m)"}},
		},
		{
			name: "mixed depths",
			forest: []domain.SuiteEntry{{
				Name: domain.Literal("A"),
				Children: []domain.SuiteEntry{{
					Name:   domain.Literal("B"),
					Issues: []domain.Issue{warn(domain.Literal("deep"), "(m)")},
				}},
				Issues: []domain.Issue{warn(domain.Literal("shallow"), "(m)")},
			}},
			want: [][]string{{"A", "B", "deep (m)"}, {"A", "shallow (m)"}},
		},
		{
			name:   "empty forest",
			forest: nil,
			want:   [][]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rows := Flatten(tt.forest)
			assert.Equal(t, tt.want, rowText(rows))
			for _, r := range rows {
				require.NotNil(t, r.Issue(), "every row ends with an issue")
			}
		})
	}
}

func TestLongestWins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys []string
		want []bool
	}{
		{name: "prefix dropped", keys: []string{"s/0/", "s/0/i/0/"}, want: []bool{false, true}},
		{name: "digit extension is not a prefix", keys: []string{"s/1/i/0/", "s/10/i/0/"}, want: []bool{true, true}},
		{name: "duplicates are kept", keys: []string{"b", "a", "b"}, want: []bool{true, true, true}},
		{name: "duplicated prefix dropped entirely", keys: []string{"a", "a", "ab"}, want: []bool{false, false, true}},
		{name: "duplicated longest kept", keys: []string{"ab", "a", "ab"}, want: []bool{true, false, true}},
		{name: "empty", keys: nil, want: []bool{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, longestWins(tt.keys))
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	first := []domain.SuiteEntry{{
		Name:     domain.Literal("A"),
		Children: []domain.SuiteEntry{{Name: domain.Literal("B"), Issues: []domain.Issue{fail(domain.Literal("t"), "e")}}},
		Issues:   []domain.Issue{warn(domain.Literal("t"), "w"), fail(domain.Literal("u"), "e")},
	}}
	second := []domain.SuiteEntry{{
		Name:   domain.Literal("C"),
		Issues: []domain.Issue{fail(domain.Literal("t"), "e")},
	}}

	t.Run("single forest", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, domain.Summary{domain.SeverityError: 2, domain.SeverityWarning: 1}, Summarize(first))
	})

	t.Run("many forests", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, domain.Summary{domain.SeverityError: 3, domain.SeverityWarning: 1}, Summarize(first, second))
	})

	t.Run("absent severities are omitted", func(t *testing.T) {
		t.Parallel()
		summary := Summarize(second)
		_, ok := summary[domain.SeverityWarning]
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, Summarize())
	})
}
