package domain

// Summary maps each severity to the number of issues reported with it.
// Severities with no issues are absent.
type Summary map[Severity]int

// Add merges other into s.
func (s Summary) Add(other Summary) {
	for sev, n := range other {
		s[sev] += n
	}
}

// Total returns the number of issues across all severities.
func (s Summary) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}
