package report

import (
	"fmt"
	"io"

	"github.com/northloop/chatgpt-backup/internal"
)

// Reporter defines the interface for all report formats
type Reporter interface {
	Render(run *internal.Run, w io.Writer) error
	Extension() string
}

// NewReporter creates a new reporter based on format
func NewReporter(format string) (Reporter, error) {
	switch format {
	case "html":
		return &HTMLReporter{}, nil
	case "json":
		return &JSONReporter{}, nil
	case "csv":
		return &CSVReporter{}, nil
	case "md", "markdown":
		return &MarkdownReporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: html, json, csv, md)", format)
	}
}
