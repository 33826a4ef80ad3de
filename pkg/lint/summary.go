package lint

import "github.com/specvital/speclint/pkg/domain"

// Summarize counts issues per severity across all suites of all forests.
func Summarize(forests ...[]domain.SuiteEntry) domain.Summary {
	summary := domain.Summary{}
	for _, forest := range forests {
		summarizeSuites(forest, summary)
	}
	return summary
}

func summarizeSuites(suites []domain.SuiteEntry, summary domain.Summary) {
	for _, suite := range suites {
		for _, issue := range suite.Issues {
			summary[issue.Severity]++
		}
		summarizeSuites(suite.Children, summary)
	}
}
