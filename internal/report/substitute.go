package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/northloop/chatgpt-backup/internal"
)

// displayLimit is the per-message character cap for rendered reports. The
// full content always remains available in the JSON report.
const displayLimit = 5000

// SubstituteImages replaces each image placeholder in a message with the
// corresponding image reference details, in part order.
func SubstituteImages(msg internal.Message) string {
	content := msg.Content
	for _, img := range msg.Images {
		var b strings.Builder
		b.WriteString("\n\n[IMAGE REFERENCE - Stored in Cloud]\n")
		if msg.ImageTitle != "" {
			fmt.Fprintf(&b, "Title: %s\n", msg.ImageTitle)
		}
		fmt.Fprintf(&b, "Asset: %s\n", img.AssetPointer)
		fmt.Fprintf(&b, "Dimensions: %dx%d\n", img.Width, img.Height)
		fmt.Fprintf(&b, "Size: %d bytes (%s)\n", img.SizeBytes, humanize.Bytes(uint64(img.SizeBytes)))
		if dalle, ok := img.Metadata["dalle"].(map[string]interface{}); ok {
			if genID, ok := dalle["gen_id"].(string); ok {
				fmt.Fprintf(&b, "Generation ID: %s\n", genID)
			}
		}
		b.WriteString("Note: Image is stored remotely on OpenAI servers (sediment:// protocol)\n")

		content = strings.Replace(content, internal.ImagePlaceholder, b.String(), 1)
	}
	return content
}

// truncateForDisplay caps very long message content for rendered reports.
func truncateForDisplay(s string) string {
	if len(s) <= displayLimit {
		return s
	}
	return s[:displayLimit] + "\n\n[... content truncated for display ...]"
}
