package internal

import "encoding/json"

// CreateTestNode creates a StorageNode with a single text part.
func CreateTestNode(role, text string, createdAt float64, children ...string) *StorageNode {
	node := &StorageNode{
		Children:  children,
		CreatedAt: createdAt,
	}
	if role != "" {
		part, _ := json.Marshal(text)
		node.Content = &NodeContent{
			Author:  Author{Role: role},
			Content: PartList{Parts: []json.RawMessage{part}},
		}
	}
	return node
}

// CreateTestImageNode creates a StorageNode whose only part is an image
// asset pointer.
func CreateTestImageNode(pointer string, width, height int, size int64, createdAt float64, children ...string) *StorageNode {
	part, _ := json.Marshal(map[string]interface{}{
		"content_type":  PartTypeImageAssetPointer,
		"asset_pointer": pointer,
		"width":         width,
		"height":        height,
		"size_bytes":    size,
	})
	return &StorageNode{
		Children:  children,
		CreatedAt: createdAt,
		Content: &NodeContent{
			Author:  Author{Role: "assistant"},
			Content: PartList{Parts: []json.RawMessage{part}},
		},
	}
}

// CreateTestConversation creates a Conversation with simple alternating
// messages.
func CreateTestConversation(file, title string, creationDate float64) *Conversation {
	messages := []Message{
		{ID: "n1", Role: "user", Content: "Hello", Timestamp: creationDate + 1},
		{ID: "n2", Role: "assistant", Content: "Hi there", Timestamp: creationDate + 2},
	}
	return &Conversation{
		File:                  file,
		SHA256:                "0000000000000000000000000000000000000000000000000000000000000000",
		Title:                 title,
		CreationDate:          creationDate,
		ModificationDate:      creationDate + 10,
		Model:                 "gpt-4o",
		Messages:              messages,
		MessageCount:          len(messages),
		UserMessageCount:      1,
		AssistantMessageCount: 1,
	}
}
