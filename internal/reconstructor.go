package internal

import (
	"strings"
)

// ImagePlaceholder marks where an image part sat inside message text. The
// report layer substitutes it with the image reference details.
const ImagePlaceholder = "[IMAGE_PLACEHOLDER]"

// ImageRef describes an image part. The asset itself lives on the vendor's
// servers; only the pointer and dimensions are recoverable from a backup.
type ImageRef struct {
	AssetPointer string                 `json:"asset_pointer"`
	Width        int                    `json:"width"`
	Height       int                    `json:"height"`
	SizeBytes    int64                  `json:"size_bytes"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// Message is one display unit recovered from the tree.
type Message struct {
	ID         string     `json:"id"`
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	Timestamp  float64    `json:"timestamp"`
	AuthorName string     `json:"author_name,omitempty"`
	CreateTime float64    `json:"create_time,omitempty"`
	Images     []ImageRef `json:"images,omitempty"`
	ImageTitle string     `json:"image_title,omitempty"`
}

// DisplayRole reports whether a role belongs in the transcript. System and
// unknown roles are excluded.
func DisplayRole(role string) bool {
	switch role {
	case "user", "assistant", "tool":
		return true
	}
	return false
}

// Reconstructor recovers the linear message sequence from a decoded
// storage map.
type Reconstructor struct {
	storage StorageMap
}

// NewReconstructor creates a Reconstructor over one document's storage.
func NewReconstructor(storage StorageMap) *Reconstructor {
	return &Reconstructor{storage: storage}
}

// Reconstruct walks the tree depth-first from startID and returns every
// display-eligible message in traversal order. Missing ids, dangling child
// references and cycles all degrade to less output; Reconstruct never
// fails. The result is not sorted here: chronological ordering is applied
// by the extractor.
func (r *Reconstructor) Reconstruct(startID string) []Message {
	visited := make(map[string]bool)
	return r.walk(startID, visited)
}

// walk visits one node and its reachable subtree. The visited set is
// shared across the whole call tree so each id is visited at most once.
func (r *Reconstructor) walk(id string, visited map[string]bool) []Message {
	if visited[id] {
		return nil
	}
	node, ok := r.storage[id]
	if !ok {
		return nil
	}
	visited[id] = true

	var messages []Message
	if msg := buildMessage(id, node); msg != nil {
		messages = append(messages, *msg)
	}

	// Children are traversed even when the node itself contributes no
	// message (system prompts, pruned branches with valid descendants).
	for _, childID := range node.Children {
		messages = append(messages, r.walk(childID, visited)...)
	}
	return messages
}

// buildMessage extracts a Message from one node, or nil when the node has
// no content, an excluded role, or nothing but whitespace.
func buildMessage(id string, node *StorageNode) *Message {
	if node.Content == nil {
		return nil
	}

	var text strings.Builder
	var images []ImageRef

	for _, raw := range node.Content.Content.Parts {
		part, err := DecodePart(raw)
		if err != nil {
			LogDebug("Skipping content part in node %s: %v", id, err)
			continue
		}
		switch part.ContentType {
		case PartTypeText, PartTypeAudioTranscription:
			text.WriteString(part.Text)
		case PartTypeImageAssetPointer:
			images = append(images, ImageRef{
				AssetPointer: part.AssetPointer,
				Width:        part.Width,
				Height:       part.Height,
				SizeBytes:    part.SizeBytes,
				Metadata:     part.Metadata,
			})
			text.WriteString(ImagePlaceholder)
		default:
			// Unknown part types from newer app versions are dropped.
			LogDebug("Ignoring part type %q in node %s", part.ContentType, id)
		}
	}

	content := strings.TrimSpace(text.String())
	role := node.Content.Author.Role
	if content == "" || !DisplayRole(role) {
		return nil
	}

	msg := &Message{
		ID:         id,
		Role:       role,
		Content:    content,
		Timestamp:  node.CreatedAt,
		AuthorName: node.Content.Author.Name,
		CreateTime: node.Content.CreateTime,
	}
	if len(images) > 0 {
		msg.Images = images
		if title, ok := node.Content.Metadata["image_gen_title"].(string); ok {
			msg.ImageTitle = title
		}
	}
	return msg
}
