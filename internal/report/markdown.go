package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/northloop/chatgpt-backup/internal"
)

// MarkdownReporter renders the run as a Markdown transcript.
type MarkdownReporter struct{}

// Render renders the run as Markdown
func (r *MarkdownReporter) Render(run *internal.Run, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# ChatGPT Conversation Report\n\n")
	_, _ = fmt.Fprintf(w, "**Generated:** %s  \n", run.GeneratedAt.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(w, "**Source:** %s  \n", run.SourceDir)
	_, _ = fmt.Fprintf(w, "**Conversations:** %d  \n", len(run.Conversations))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", run.Stats.MessageTotal)

	if run.Case.CaseNumber != "" || run.Case.EvidenceID != "" {
		_, _ = fmt.Fprintf(w, "**Case:** %s  \n", run.Case.CaseNumber)
		_, _ = fmt.Fprintf(w, "**Evidence:** %s  \n", run.Case.EvidenceID)
		_, _ = fmt.Fprintf(w, "**Examiner:** %s\n\n", run.Case.Examiner)
	}

	for _, conv := range run.Conversations {
		_, _ = fmt.Fprintf(w, "## %s\n\n", conv.Title)
		_, _ = fmt.Fprintf(w, "**File:** %s  \n", conv.File)
		_, _ = fmt.Fprintf(w, "**SHA-256:** `%s`  \n", conv.SHA256)
		_, _ = fmt.Fprintf(w, "**Created:** %s  \n", internal.FormatCocoa(conv.CreationDate))
		_, _ = fmt.Fprintf(w, "**Model:** %s  \n", conv.Model)
		_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", conv.MessageCount)

		for i, msg := range conv.Messages {
			timestamp := ""
			if msg.Timestamp > 0 {
				timestamp = fmt.Sprintf(" (%s)", internal.FormatCocoa(msg.Timestamp))
			}

			content := escapeMarkdown(SubstituteImages(msg))

			_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", msg.Role, timestamp, content)

			if i < len(conv.Messages)-1 {
				_, _ = fmt.Fprintf(w, "---\n\n")
			}
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (r *MarkdownReporter) Extension() string {
	return "md"
}

// escapeMarkdown escapes characters that would change document structure.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"`", "\\`",
		"*", "\\*",
		"_", "\\_",
		"#", "\\#",
	)
	return replacer.Replace(s)
}
