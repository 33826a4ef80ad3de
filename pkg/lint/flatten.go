package lint

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/specvital/speclint/pkg/domain"
)

// Cell is one column of a flattened row: a suite name or, in the last
// column, the issue itself.
type Cell struct {
	Name  domain.NodeName
	Issue *domain.Issue
}

// IsIssue reports whether the cell holds an issue.
func (c Cell) IsIssue() bool {
	return c.Issue != nil
}

// String renders the cell as plain text.
func (c Cell) String() string {
	if c.Issue != nil {
		return c.Issue.Label.String() + " " + c.Issue.Message
	}
	return c.Name.String()
}

func (c Cell) key() string {
	if c.Issue == nil {
		return c.Name.Key()
	}
	b, _ := json.Marshal(struct {
		Severity domain.Severity `json:"s"`
		Message  string          `json:"m"`
		Label    string          `json:"l"`
	}{c.Issue.Severity, c.Issue.Message, c.Issue.Label.Key()})
	return string(b)
}

// Row is the chain of suite names from a top-level suite down to one issue.
type Row []Cell

// Issue returns the issue in the last column, or nil for an empty row.
func (r Row) Issue() *domain.Issue {
	if len(r) == 0 {
		return nil
	}
	return r[len(r)-1].Issue
}

// rowSep terminates each cell key. JSON escapes control characters, so it
// never appears inside a key.
const rowSep = "\x1f"

func (r Row) key() string {
	var sb strings.Builder
	for _, c := range r {
		sb.WriteString(c.key())
		sb.WriteString(rowSep)
	}
	return sb.String()
}

// Flatten turns a forest into one row per issue, in source order.
//
// Every suite and issue position is addressed by its structural path.
// Paths that are a strict prefix of another path are dropped, leaving only
// the deepest positions. Each remaining path becomes a row of labels, and
// rows that are a strict prefix of another row are dropped. Rows with
// identical content are all kept, so there is exactly one row per issue
// and row counts reconcile with Summarize. Suites holding no issue at any
// depth produce no row.
func Flatten(forest []domain.SuiteEntry) []Row {
	var paths []accessPath
	enumerateSuites(forest, nil, &paths)

	pathKeys := make([]string, len(paths))
	for i, p := range paths {
		pathKeys[i] = p.key()
	}
	keepPath := longestWins(pathKeys)

	var rows []Row
	for i, p := range paths {
		if !keepPath[i] {
			continue
		}
		row := p.project(forest)
		if row.Issue() == nil {
			continue
		}
		rows = append(rows, row)
	}

	rowKeys := make([]string, len(rows))
	for i, r := range rows {
		rowKeys[i] = r.key()
	}
	keepRow := longestWins(rowKeys)

	out := make([]Row, 0, len(rows))
	for i, r := range rows {
		if keepRow[i] {
			out = append(out, r)
		}
	}
	return out
}

type stepKind byte

const (
	stepSuite stepKind = 's'
	stepChild stepKind = 'c'
	stepIssue stepKind = 'i'
)

type pathStep struct {
	kind  stepKind
	index int
}

// accessPath addresses one suite or issue inside a forest.
type accessPath []pathStep

func (p accessPath) key() string {
	var sb strings.Builder
	for _, s := range p {
		sb.WriteByte(byte(s.kind))
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(s.index))
		sb.WriteByte('/')
	}
	return sb.String()
}

// project resolves the path against forest and collects the names along it.
func (p accessPath) project(forest []domain.SuiteEntry) Row {
	row := make(Row, 0, len(p))
	level := forest
	var current *domain.SuiteEntry

	for _, s := range p {
		switch s.kind {
		case stepSuite, stepChild:
			current = &level[s.index]
			row = append(row, Cell{Name: current.Name})
			level = current.Children
		case stepIssue:
			issue := current.Issues[s.index]
			row = append(row, Cell{Issue: &issue})
		}
	}
	return row
}

func enumerateSuites(suites []domain.SuiteEntry, parent accessPath, out *[]accessPath) {
	kind := stepChild
	if parent == nil {
		kind = stepSuite
	}

	for i, suite := range suites {
		path := extend(parent, pathStep{kind: kind, index: i})
		*out = append(*out, path)

		enumerateSuites(suite.Children, path, out)
		for j := range suite.Issues {
			*out = append(*out, extend(path, pathStep{kind: stepIssue, index: j}))
		}
	}
}

func extend(p accessPath, s pathStep) accessPath {
	next := make(accessPath, len(p), len(p)+1)
	copy(next, p)
	return append(next, s)
}

// longestWins reports, per key, whether it survives longest-prefix-wins
// deduplication: a key is dropped when it is a strict prefix of another
// key. Equal keys are all kept.
func longestWins(keys []string) []bool {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]] < keys[order[b]]
	})

	keep := make([]bool, len(keys))
	for pos, idx := range order {
		key := keys[idx]

		next := pos + 1
		for next < len(order) && keys[order[next]] == key {
			next++
		}
		// Sorted order puts every extension of key right after its run.
		keep[idx] = next == len(order) || !strings.HasPrefix(keys[order[next]], key)
	}
	return keep
}
