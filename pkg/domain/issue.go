package domain

// Issue is one finding attached to a test.
type Issue struct {
	// Severity is the classification of the finding.
	Severity Severity `json:"severity" yaml:"severity"`
	// Message is a human-readable description, e.g. "(empty test title)".
	Message string `json:"message" yaml:"message"`
	// Label is the resolved title of the test the finding belongs to.
	Label NodeName `json:"label" yaml:"label"`
}

// TestEntry is an issue at the leaf level of the suite forest.
type TestEntry = Issue

// SuiteEntry is one suite of the forest together with its findings.
// Children and Issues keep source order.
type SuiteEntry struct {
	Name     NodeName     `json:"name" yaml:"name"`
	Children []SuiteEntry `json:"children,omitempty" yaml:"children,omitempty"`
	Issues   []Issue      `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// CountIssues returns the number of issues in this suite and all nested suites.
func (s *SuiteEntry) CountIssues() int {
	count := len(s.Issues)
	for _, child := range s.Children {
		count += child.CountIssues()
	}
	return count
}
