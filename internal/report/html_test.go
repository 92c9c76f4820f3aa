package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/northloop/chatgpt-backup/internal"
)

func testRun() *internal.Run {
	conv := internal.CreateTestConversation("conv.json", "Trip planning", 700000000)
	return &internal.Run{
		GeneratedAt:   time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		SourceDir:     "/evidence/conversations-v3-abc",
		Device:        internal.UnknownDeviceInfo(),
		Conversations: []*internal.Conversation{conv},
		Stats: internal.Stats{
			FilesTotal:     2,
			FilesProcessed: 1,
			FilesFailed:    1,
			MessageTotal:   conv.MessageCount,
			Errors:         []string{"document error [bad.json]: invalid character"},
		},
		Hashes: map[string]string{"conv.json": conv.SHA256},
	}
}

func TestHTMLReporter_Render(t *testing.T) {
	var buf bytes.Buffer
	if err := (&HTMLReporter{}).Render(testRun(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Trip planning",
		"conv.json",
		"Hello",
		"Hi there",
		"seconds since January 1, 2001",
		"bad.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML report missing %q", want)
		}
	}
}

func TestHTMLReporter_EscapesContent(t *testing.T) {
	run := testRun()
	run.Conversations[0].Messages[0].Content = `<script>alert("xss")</script>`

	var buf bytes.Buffer
	if err := (&HTMLReporter{}).Render(run, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	if strings.Contains(out, `<script>alert("xss")</script>`) {
		t.Error("message content not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("escaped form not found in output")
	}
}

func TestHTMLReporter_CaseSection(t *testing.T) {
	run := testRun()
	run.Case = internal.CaseInfo{
		CaseNumber: "2026-0142",
		EvidenceID: "EV-007",
		Examiner:   "J. Doe",
	}

	var buf bytes.Buffer
	if err := (&HTMLReporter{}).Render(run, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Case Information") || !strings.Contains(out, "2026-0142") {
		t.Error("case section missing from report")
	}

	// Without case metadata, the section is omitted entirely.
	buf.Reset()
	if err := (&HTMLReporter{}).Render(testRun(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "Case Information") {
		t.Error("case section rendered without case metadata")
	}
}

func TestHTMLReporter_SubstitutesImages(t *testing.T) {
	run := testRun()
	run.Conversations[0].Messages[1] = internal.Message{
		ID:      "img",
		Role:    "assistant",
		Content: internal.ImagePlaceholder,
		Images:  []internal.ImageRef{{AssetPointer: "sediment://file_abc", Width: 512, Height: 512}},
	}

	var buf bytes.Buffer
	if err := (&HTMLReporter{}).Render(run, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	if strings.Contains(out, internal.ImagePlaceholder) {
		t.Error("image placeholder survived into HTML output")
	}
	if !strings.Contains(out, "sediment://file_abc") {
		t.Error("image reference missing from HTML output")
	}
}
