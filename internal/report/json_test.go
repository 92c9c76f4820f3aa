package report

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONReporter_Render(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONReporter{}).Render(testRun(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded struct {
		SourceDir     string `json:"source_dir"`
		Conversations []struct {
			Title    string `json:"title"`
			SHA256   string `json:"sha256"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		} `json:"conversations"`
		Stats struct {
			FilesTotal  int `json:"files_total"`
			FilesFailed int `json:"files_failed"`
		} `json:"stats"`
		Hashes map[string]string `json:"hashes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.SourceDir != "/evidence/conversations-v3-abc" {
		t.Errorf("source_dir = %q", decoded.SourceDir)
	}
	if len(decoded.Conversations) != 1 {
		t.Fatalf("conversations = %d, want 1", len(decoded.Conversations))
	}
	if decoded.Conversations[0].Title != "Trip planning" {
		t.Errorf("title = %q", decoded.Conversations[0].Title)
	}
	if len(decoded.Conversations[0].Messages) != 2 {
		t.Errorf("messages = %d, want 2", len(decoded.Conversations[0].Messages))
	}
	if decoded.Stats.FilesTotal != 2 || decoded.Stats.FilesFailed != 1 {
		t.Errorf("stats = %+v", decoded.Stats)
	}
	if len(decoded.Hashes) != 1 {
		t.Errorf("hashes = %v", decoded.Hashes)
	}
}
