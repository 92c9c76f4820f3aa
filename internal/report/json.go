package report

import (
	"encoding/json"
	"io"

	"github.com/northloop/chatgpt-backup/internal"
)

// JSONReporter renders the full run (records, statistics, provenance and
// hashes) as pretty-printed JSON.
type JSONReporter struct{}

// Render renders the run as JSON
func (r *JSONReporter) Render(run *internal.Run, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(run)
}

// Extension returns the file extension for this format
func (r *JSONReporter) Extension() string {
	return "json"
}
