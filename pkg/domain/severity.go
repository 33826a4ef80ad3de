package domain

// Severity classifies a lint finding. It never affects process success.
type Severity string

const (
	// SeverityError marks findings that break test isolation.
	SeverityError Severity = "error"
	// SeverityWarning marks style and maintainability findings.
	SeverityWarning Severity = "warning"
)

// Severities lists all severities in display order.
var Severities = []Severity{SeverityError, SeverityWarning}

func (s Severity) String() string {
	return string(s)
}
