package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/northloop/chatgpt-backup/testutil"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	return rootCmd.Execute()
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	storage := map[string]interface{}{
		"n1": testutil.TextNode("user", "What is the airspeed of a swallow?", 100, "n2"),
		"n2": testutil.TextNode("assistant", "African or European?", 200),
	}
	testutil.WriteDocument(t, dir, "conv.json", testutil.Document("Swallows", "n1", storage))
	return dir
}

func TestExtractCommand_JSONReport(t *testing.T) {
	src := fixtureDir(t)
	out := t.TempDir()

	err := runCommand(t, "extract", "--source", src, "--out", out, "--format", "json")
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "chatgpt_forensic_report.json"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var run struct {
		Conversations []struct {
			Title string `json:"title"`
		} `json:"conversations"`
	}
	if err := json.Unmarshal(data, &run); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(run.Conversations) != 1 || run.Conversations[0].Title != "Swallows" {
		t.Errorf("report conversations = %+v", run.Conversations)
	}
}

func TestExtractCommand_InvalidFormat(t *testing.T) {
	err := runCommand(t, "extract", "--source", fixtureDir(t), "--out", t.TempDir(), "--format", "pdf")
	if err == nil {
		t.Error("extract with invalid format should fail")
	}
}

func TestExtractCommand_InvalidDate(t *testing.T) {
	err := runCommand(t, "extract", "--source", fixtureDir(t), "--out", t.TempDir(),
		"--format", "json", "--from", "15/01/2025")
	if err == nil {
		t.Error("extract with malformed date should fail")
	}
}

func TestExtractCommand_RecordsCatalog(t *testing.T) {
	src := fixtureDir(t)
	catalogPath := filepath.Join(t.TempDir(), "catalog.db")

	err := runCommand(t, "extract", "--source", src, "--out", t.TempDir(),
		"--format", "json", "--from", "", "--catalog", catalogPath)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}
	if _, err := os.Stat(catalogPath); err != nil {
		t.Errorf("catalog database not created: %v", err)
	}

	// A second run over unchanged evidence verifies clean.
	if err := runCommand(t, "verify", "--source", src, "--catalog", catalogPath); err != nil {
		t.Errorf("verify after extract error = %v", err)
	}
}

func TestVerifyCommand_DetectsChanges(t *testing.T) {
	src := fixtureDir(t)
	catalogPath := filepath.Join(t.TempDir(), "catalog.db")

	err := runCommand(t, "extract", "--source", src, "--out", t.TempDir(),
		"--format", "json", "--catalog", catalogPath)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(src, "conv.json"), []byte(`{"title":"tampered"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "verify", "--source", src, "--catalog", catalogPath); err == nil {
		t.Error("verify should fail after evidence modification")
	}
}
