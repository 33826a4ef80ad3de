package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/specvital/speclint/pkg/domain"
	"github.com/specvital/speclint/pkg/lint"
	"github.com/specvital/speclint/pkg/runner"
)

type tableRenderer struct {
	styles map[domain.Severity]*color.Color
}

func newTableRenderer(mode ColorMode) tableRenderer {
	styles := map[domain.Severity]*color.Color{
		domain.SeverityError:   color.New(color.FgRed),
		domain.SeverityWarning: color.New(color.FgYellow),
	}
	for _, c := range styles {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
	return tableRenderer{styles: styles}
}

// Render writes one titled table per file with findings, then the summary.
func (r tableRenderer) Render(w io.Writer, result *runner.Result) error {
	var sb strings.Builder
	for _, f := range result.Files {
		sb.WriteString(r.fileBlock(f.Path, f.Rows))
	}
	sb.WriteString("\n")
	sb.WriteString(r.summaryLine(result.Summary))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// fileBlock is empty for a file without rows.
func (r tableRenderer) fileBlock(path string, rows []lint.Row) string {
	if len(rows) == 0 {
		return ""
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, width)
		for i, cell := range row {
			line[i] = r.cell(cell)
		}
		cells = append(cells, line)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Rows(cells...)

	return "\n" + path + "\n" + t.String() + "\n"
}

func (r tableRenderer) cell(c lint.Cell) string {
	if !c.IsIssue() {
		return c.Name.String()
	}
	return c.Issue.Label.String() + " " + r.paint(c.Issue.Severity, c.Issue.Message)
}

func (r tableRenderer) paint(sev domain.Severity, s string) string {
	if c, ok := r.styles[sev]; ok {
		return c.Sprint(s)
	}
	return s
}

func (r tableRenderer) summaryLine(summary domain.Summary) string {
	if summary.Total() == 0 {
		return "No issues found."
	}

	parts := make([]string, 0, len(domain.Severities))
	for _, sev := range domain.Severities {
		n, ok := summary[sev]
		if !ok {
			continue
		}
		parts = append(parts, r.paint(sev, fmt.Sprintf("%d %s(s)", n, sev)))
	}
	return "Summary: " + strings.Join(parts, ", ")
}
