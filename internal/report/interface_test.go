package report

import (
	"testing"
)

func TestNewReporter(t *testing.T) {
	tests := []struct {
		format    string
		extension string
	}{
		{"html", "html"},
		{"json", "json"},
		{"csv", "csv"},
		{"md", "md"},
		{"markdown", "md"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			reporter, err := NewReporter(tt.format)
			if err != nil {
				t.Fatalf("NewReporter(%q) error = %v", tt.format, err)
			}
			if reporter.Extension() != tt.extension {
				t.Errorf("Extension() = %q, want %q", reporter.Extension(), tt.extension)
			}
		})
	}
}

func TestNewReporter_Unsupported(t *testing.T) {
	if _, err := NewReporter("xml"); err == nil {
		t.Error("NewReporter(\"xml\") should fail")
	}
}
