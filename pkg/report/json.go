package report

import (
	"encoding/json"
	"io"

	"github.com/specvital/speclint/pkg/runner"
)

type jsonRenderer struct{}

func (jsonRenderer) Render(w io.Writer, result *runner.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(result))
}
