package lint

import "github.com/specvital/speclint/pkg/domain"

// Clean drops every suite that holds no issue at any depth, and nils out
// empty Children and Issues slices. The input is not modified.
func Clean(forest []domain.SuiteEntry) []domain.SuiteEntry {
	var cleaned []domain.SuiteEntry
	for _, suite := range forest {
		entry := domain.SuiteEntry{
			Name:     suite.Name,
			Children: Clean(suite.Children),
		}
		if len(suite.Issues) > 0 {
			entry.Issues = append([]domain.Issue(nil), suite.Issues...)
		}
		if len(entry.Children) == 0 && len(entry.Issues) == 0 {
			continue
		}
		cleaned = append(cleaned, entry)
	}
	return cleaned
}
