// Package report renders lint results as terminal tables, JSON or YAML.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specvital/speclint/pkg/domain"
	"github.com/specvital/speclint/pkg/runner"
)

// Format selects an output renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ColorMode controls ANSI styling in table output.
type ColorMode string

const (
	// ColorAuto leaves the decision to the terminal detection of fatih/color.
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Options configures rendering.
type Options struct {
	Format Format
	Color  ColorMode
}

// Renderer writes a run result to w.
type Renderer interface {
	Render(w io.Writer, result *runner.Result) error
}

// New returns the renderer for opts.Format. An empty format means table.
func New(opts Options) (Renderer, error) {
	switch opts.Format {
	case FormatTable, "":
		return newTableRenderer(opts.Color), nil
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatYAML:
		return yamlRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// Render writes result to w in the requested format.
func Render(w io.Writer, result *runner.Result, opts Options) error {
	r, err := New(opts)
	if err != nil {
		return err
	}
	return r.Render(w, result)
}

// document is the machine-readable shape shared by JSON and YAML output.
type document struct {
	Files   []runner.FileResult `json:"files" yaml:"files"`
	Summary domain.Summary      `json:"summary" yaml:"summary"`
	Errors  []string            `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newDocument(result *runner.Result) document {
	doc := document{
		Files:   []runner.FileResult{},
		Summary: result.Summary,
	}
	for _, f := range result.Files {
		if len(f.Suites) > 0 {
			doc.Files = append(doc.Files, f)
		}
	}
	if doc.Summary == nil {
		doc.Summary = domain.Summary{}
	}
	for _, e := range result.Errors {
		doc.Errors = append(doc.Errors, e.Error())
	}
	return doc
}
