package internal

import (
	"encoding/json"
	"fmt"
)

// StorageNode is one entry in a conversation document's flattened tree
// storage. Children may reference ids that are absent from the storage, or
// ancestors of the node itself.
type StorageNode struct {
	Content   *NodeContent `json:"content,omitempty"`
	Children  []string     `json:"children,omitempty"`
	CreatedAt float64      `json:"created_at,omitempty"`
}

// NodeContent carries the message payload of a storage node, when present.
type NodeContent struct {
	Author     Author                 `json:"author"`
	Content    PartList               `json:"content"`
	CreateTime float64                `json:"create_time,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Author identifies who produced a message.
type Author struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
}

// PartList holds the raw content parts of a message. Parts stay raw here
// because a part is either a bare JSON string or a typed object.
type PartList struct {
	Parts []json.RawMessage `json:"parts"`
}

// ContentPart is the decoded form of a typed content part.
type ContentPart struct {
	ContentType  string                 `json:"content_type"`
	Text         string                 `json:"text,omitempty"`
	AssetPointer string                 `json:"asset_pointer,omitempty"`
	Width        int                    `json:"width,omitempty"`
	Height       int                    `json:"height,omitempty"`
	SizeBytes    int64                  `json:"size_bytes,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// Content part types observed across app versions.
const (
	PartTypeText               = "text"
	PartTypeAudioTranscription = "audio_transcription"
	PartTypeImageAssetPointer  = "image_asset_pointer"
)

// DecodePart decodes one raw content part. A bare JSON string becomes a
// text part; a typed object is decoded as-is. Returns an error for parts
// that are neither.
func DecodePart(raw json.RawMessage) (*ContentPart, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &ContentPart{ContentType: PartTypeText, Text: s}, nil
	}

	var part ContentPart
	if err := json.Unmarshal(raw, &part); err != nil {
		return nil, fmt.Errorf("undecodable content part: %w", err)
	}
	return &part, nil
}

// StorageMap is the decoded id -> node table for one conversation document.
type StorageMap map[string]*StorageNode

// DecodeStorageMap decodes tree storage from either of the two historical
// encodings: a keyed object, or a flat alternating sequence
// [id_0, node_0, id_1, node_1, ...]. An odd trailing element with no
// paired node is ignored, as are pairs whose node fails to decode.
func DecodeStorageMap(raw json.RawMessage) (StorageMap, error) {
	if len(raw) == 0 {
		return StorageMap{}, nil
	}

	var keyed map[string]*StorageNode
	if err := json.Unmarshal(raw, &keyed); err == nil {
		storage := make(StorageMap, len(keyed))
		for id, node := range keyed {
			if node != nil {
				storage[id] = node
			}
		}
		return storage, nil
	}

	var flat []json.RawMessage
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("storage is neither a mapping nor a list: %w", err)
	}

	storage := make(StorageMap, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		var id string
		if err := json.Unmarshal(flat[i], &id); err != nil {
			LogDebug("Skipping storage pair %d: non-string id", i/2)
			continue
		}
		var node StorageNode
		if err := json.Unmarshal(flat[i+1], &node); err != nil {
			LogDebug("Skipping storage node %s: %v", id, err)
			continue
		}
		storage[id] = &node
	}
	return storage, nil
}

// rawDocument is the on-disk shape of one conversation document.
type rawDocument struct {
	Title             string  `json:"title"`
	RemoteID          string  `json:"remote_id"`
	CreationDate      float64 `json:"creation_date"`
	ModificationDate  float64 `json:"modification_date"`
	IsArchived        bool    `json:"is_archived"`
	CurrentLeafNodeID string  `json:"current_leaf_node_id"`
	Configuration     struct {
		LastModel string `json:"last_model"`
	} `json:"configuration"`
	Tree rawTree `json:"tree"`
}

type rawTree struct {
	RootNodeID    string          `json:"root_node_id"`
	CurrentNodeID string          `json:"current_node_id"`
	Storage       json.RawMessage `json:"storage"`
}

// rootIDAccessors is the ordered fallback chain for resolving the starting
// node of a document. Later app versions renamed the field; new names go
// at the front.
var rootIDAccessors = []func(*rawDocument) string{
	func(d *rawDocument) string { return d.Tree.RootNodeID },
	func(d *rawDocument) string { return d.Tree.CurrentNodeID },
	func(d *rawDocument) string { return d.CurrentLeafNodeID },
}

// rootID resolves the starting node id, or "" when no accessor yields one.
func (d *rawDocument) rootID() string {
	for _, accessor := range rootIDAccessors {
		if id := accessor(d); id != "" {
			return id
		}
	}
	return ""
}
