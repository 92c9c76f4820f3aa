package report

import (
	"encoding/csv"
	"io"

	"github.com/northloop/chatgpt-backup/internal"
)

// CSVReporter renders one row per message with its conversation context,
// for spreadsheet review and timeline tooling.
type CSVReporter struct{}

var csvHeader = []string{
	"file", "sha256", "conversation_title", "remote_id", "model",
	"message_id", "role", "timestamp", "author_name", "content",
}

// Render renders the run as CSV
func (r *CSVReporter) Render(run *internal.Run, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, conv := range run.Conversations {
		for _, msg := range conv.Messages {
			row := []string{
				conv.File,
				conv.SHA256,
				conv.Title,
				conv.RemoteID,
				conv.Model,
				msg.ID,
				msg.Role,
				internal.FormatCocoa(msg.Timestamp),
				msg.AuthorName,
				msg.Content,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// Extension returns the file extension for this format
func (r *CSVReporter) Extension() string {
	return "csv"
}
