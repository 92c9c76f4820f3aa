package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCaseInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	content := `case_number: "2026-0142"
evidence_id: "EV-007"
examiner: "J. Doe"
notes: "iPhone backup, consent search"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := LoadCaseInfo(path)
	if err != nil {
		t.Fatalf("LoadCaseInfo() error = %v", err)
	}
	if info.CaseNumber != "2026-0142" {
		t.Errorf("case number = %q", info.CaseNumber)
	}
	if info.EvidenceID != "EV-007" {
		t.Errorf("evidence id = %q", info.EvidenceID)
	}
	if info.Examiner != "J. Doe" {
		t.Errorf("examiner = %q", info.Examiner)
	}
}

func TestLoadCaseInfo_Missing(t *testing.T) {
	if _, err := LoadCaseInfo(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadCaseInfo() should fail for a missing file")
	}
}

func TestLoadCaseInfo_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	if err := os.WriteFile(path, []byte(":\n  - not valid: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCaseInfo(path); err == nil {
		t.Error("LoadCaseInfo() should fail for malformed YAML")
	}
}
