package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/specvital/speclint/pkg/runner"
)

type yamlRenderer struct{}

func (yamlRenderer) Render(w io.Writer, result *runner.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(result)); err != nil {
		return err
	}
	return enc.Close()
}
