package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CaseInfo is the examiner-supplied case metadata, threaded opaquely into
// reports.
type CaseInfo struct {
	CaseNumber string `yaml:"case_number" json:"case_number,omitempty"`
	EvidenceID string `yaml:"evidence_id" json:"evidence_id,omitempty"`
	Examiner   string `yaml:"examiner" json:"examiner,omitempty"`
	Notes      string `yaml:"notes" json:"notes,omitempty"`
}

// LoadCaseInfo reads case metadata from a YAML file.
func LoadCaseInfo(path string) (CaseInfo, error) {
	var info CaseInfo

	data, err := os.ReadFile(path)
	if err != nil {
		return info, fmt.Errorf("failed to read case file: %w", err)
	}
	if err := yaml.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("failed to parse case file: %w", err)
	}
	return info, nil
}
