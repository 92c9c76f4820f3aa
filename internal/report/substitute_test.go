package report

import (
	"strings"
	"testing"

	"github.com/northloop/chatgpt-backup/internal"
)

func TestSubstituteImages(t *testing.T) {
	msg := internal.Message{
		ID:      "n1",
		Role:    "assistant",
		Content: "Here you go: " + internal.ImagePlaceholder,
		Images: []internal.ImageRef{
			{
				AssetPointer: "sediment://file_abc",
				Width:        1024,
				Height:       1024,
				SizeBytes:    2097152,
				Metadata: map[string]interface{}{
					"dalle": map[string]interface{}{"gen_id": "gen-123"},
				},
			},
		},
		ImageTitle: "A lighthouse at dusk",
	}

	got := SubstituteImages(msg)

	if strings.Contains(got, internal.ImagePlaceholder) {
		t.Error("placeholder not substituted")
	}
	for _, want := range []string{
		"sediment://file_abc",
		"1024x1024",
		"2097152 bytes",
		"gen-123",
		"A lighthouse at dusk",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("substituted content missing %q:\n%s", want, got)
		}
	}
}

func TestSubstituteImages_MultiplePlaceholders(t *testing.T) {
	msg := internal.Message{
		Content: internal.ImagePlaceholder + " and " + internal.ImagePlaceholder,
		Images: []internal.ImageRef{
			{AssetPointer: "sediment://first"},
			{AssetPointer: "sediment://second"},
		},
	}

	got := SubstituteImages(msg)
	firstIdx := strings.Index(got, "sediment://first")
	secondIdx := strings.Index(got, "sediment://second")
	if firstIdx < 0 || secondIdx < 0 {
		t.Fatalf("missing image references:\n%s", got)
	}
	if firstIdx > secondIdx {
		t.Error("image references substituted out of order")
	}
}

func TestSubstituteImages_NoImages(t *testing.T) {
	msg := internal.Message{Content: "plain text"}
	if got := SubstituteImages(msg); got != "plain text" {
		t.Errorf("SubstituteImages() = %q, want unchanged content", got)
	}
}

func TestTruncateForDisplay(t *testing.T) {
	short := "short content"
	if got := truncateForDisplay(short); got != short {
		t.Errorf("truncateForDisplay() modified short content")
	}

	long := strings.Repeat("a", displayLimit+100)
	got := truncateForDisplay(long)
	if !strings.Contains(got, "truncated for display") {
		t.Error("truncateForDisplay() missing truncation marker")
	}
	if len(got) >= len(long) {
		t.Error("truncateForDisplay() did not shorten content")
	}
}
