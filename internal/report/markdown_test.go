package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/northloop/chatgpt-backup/internal"
)

func TestMarkdownReporter_Render(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownReporter{}).Render(testRun(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# ChatGPT Conversation Report",
		"## Trip planning",
		"**user:**",
		"**assistant:**",
		"Hello",
		"conv.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}
}

func TestMarkdownReporter_CaseSection(t *testing.T) {
	run := testRun()
	run.Case = internal.CaseInfo{CaseNumber: "2026-0142", EvidenceID: "EV-007", Examiner: "J. Doe"}

	var buf bytes.Buffer
	if err := (&MarkdownReporter{}).Render(run, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "2026-0142") {
		t.Error("case number missing from markdown report")
	}
}

func TestEscapeMarkdown(t *testing.T) {
	got := escapeMarkdown("a *bold* claim with `code` and #tags")
	for _, want := range []string{`\*bold\*`, "\\`code\\`", `\#tags`} {
		if !strings.Contains(got, want) {
			t.Errorf("escapeMarkdown() = %q, missing %q", got, want)
		}
	}
}
