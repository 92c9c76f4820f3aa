package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TextNode builds a storage node with a single string part.
func TextNode(role, text string, createdAt float64, children ...string) map[string]interface{} {
	node := map[string]interface{}{
		"created_at": createdAt,
	}
	if len(children) > 0 {
		node["children"] = children
	}
	if role != "" {
		node["content"] = map[string]interface{}{
			"author":  map[string]interface{}{"role": role},
			"content": map[string]interface{}{"parts": []interface{}{text}},
		}
	}
	return node
}

// ImageNode builds a storage node whose only part is an image asset
// pointer.
func ImageNode(pointer string, width, height, size int, createdAt float64, children ...string) map[string]interface{} {
	node := map[string]interface{}{
		"created_at": createdAt,
		"content": map[string]interface{}{
			"author": map[string]interface{}{"role": "assistant"},
			"content": map[string]interface{}{
				"parts": []interface{}{
					map[string]interface{}{
						"content_type":  "image_asset_pointer",
						"asset_pointer": pointer,
						"width":         width,
						"height":        height,
						"size_bytes":    size,
					},
				},
			},
		},
	}
	if len(children) > 0 {
		node["children"] = children
	}
	return node
}

// Document builds a minimal conversation document around a keyed storage
// mapping.
func Document(title, rootID string, storage map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"title":             title,
		"remote_id":         "remote-" + rootID,
		"creation_date":     700000000.0,
		"modification_date": 700000100.0,
		"configuration":     map[string]interface{}{"last_model": "gpt-4o"},
		"tree": map[string]interface{}{
			"root_node_id": rootID,
			"storage":      storage,
		},
	}
}

// FlatStorage converts a keyed storage mapping into the flat alternating
// list encoding, in the given id order.
func FlatStorage(order []string, storage map[string]interface{}) []interface{} {
	flat := make([]interface{}, 0, len(order)*2)
	for _, id := range order {
		flat = append(flat, id, storage[id])
	}
	return flat
}

// WriteDocument marshals a conversation document into dir.
func WriteDocument(t *testing.T, dir, name string, doc interface{}) string {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
	return path
}

// WriteMalformedDocument writes a file that cannot be parsed as JSON.
func WriteMalformedDocument(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write malformed document: %v", err)
	}
	return path
}

// WriteSegmentFixture creates the segment analytics layout next to a
// conversations directory and returns the base directory.
func WriteSegmentFixture(t *testing.T, baseDir string, event map[string]interface{}) {
	t.Helper()
	segmentDir := filepath.Join(baseDir, "segment", "oai")
	if err := os.MkdirAll(segmentDir, 0755); err != nil {
		t.Fatalf("Failed to create segment directory: %v", err)
	}
	batch := map[string]interface{}{"batch": []interface{}{event}}
	data, err := json.Marshal(batch)
	if err != nil {
		t.Fatalf("Failed to marshal segment batch: %v", err)
	}
	path := filepath.Join(segmentDir, "1700000000-segment-events.temp")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write segment fixture: %v", err)
	}
}
