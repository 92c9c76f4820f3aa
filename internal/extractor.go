package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Conversation is one reconstructed document plus its evidentiary
// metadata.
type Conversation struct {
	File                  string    `json:"file"`
	SHA256                string    `json:"sha256"`
	Title                 string    `json:"title"`
	RemoteID              string    `json:"remote_id,omitempty"`
	CreationDate          float64   `json:"creation_date"`
	ModificationDate      float64   `json:"modification_date"`
	IsArchived            bool      `json:"is_archived"`
	Model                 string    `json:"model"`
	Messages              []Message `json:"messages"`
	MessageCount          int       `json:"message_count"`
	UserMessageCount      int       `json:"user_message_count"`
	AssistantMessageCount int       `json:"assistant_message_count"`
}

// Stats accumulates run-level counters across one extraction.
type Stats struct {
	FilesTotal     int      `json:"files_total"`
	FilesProcessed int      `json:"files_processed"`
	FilesFailed    int      `json:"files_failed"`
	MessageTotal   int      `json:"message_total"`
	Errors         []string `json:"errors,omitempty"`
}

// Options controls an extraction run. Zero dates mean unbounded.
type Options struct {
	DateFrom time.Time
	DateTo   time.Time
}

// Run is the full output of one extraction: the record collection plus
// everything the report layer needs for the evidentiary sections.
type Run struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	SourceDir     string            `json:"source_dir"`
	Device        DeviceInfo        `json:"device"`
	Case          CaseInfo          `json:"case"`
	Conversations []*Conversation   `json:"conversations"`
	Stats         Stats             `json:"stats"`
	Hashes        map[string]string `json:"hashes"`
}

// Extractor iterates a directory of conversation documents and reconstructs
// each into a Conversation. One Extractor owns the state of one run.
type Extractor struct {
	opts   Options
	stats  Stats
	hashes map[string]string
}

// NewExtractor creates an Extractor for one run.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{
		opts:   opts,
		hashes: make(map[string]string),
	}
}

// Stats returns the accumulated run statistics.
func (e *Extractor) Stats() Stats {
	return e.stats
}

// Hashes returns the sha256 digest of every file read so far, keyed by
// file name.
func (e *Extractor) Hashes() map[string]string {
	return e.hashes
}

// ExtractOne reads and reconstructs a single document file. A nil
// Conversation with nil error means the document parsed but yielded no
// displayable messages; that is not anomalous.
func (e *Extractor) ExtractOne(path string) (*Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	return e.extractDocument(filepath.Base(path), data)
}

// extractDocument reconstructs one document from raw bytes. The digest is
// recorded before parsing so even malformed files stay identifiable.
func (e *Extractor) extractDocument(name string, data []byte) (*Conversation, error) {
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	e.hashes[name] = digest

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DocumentError{File: name, Err: err}
	}

	storage, err := DecodeStorageMap(doc.Tree.Storage)
	if err != nil {
		return nil, &DocumentError{File: name, Err: err}
	}

	rootID := doc.rootID()
	if rootID == "" {
		// Empty and system-only documents legitimately lack a root.
		LogDebug("No resolvable root node in %s", name)
		return nil, nil
	}

	messages := NewReconstructor(storage).Reconstruct(rootID)

	// Re-filter what the reconstructor already guarantees, so a future
	// relaxation of the traversal filter cannot leak into the record.
	filtered := messages[:0]
	for _, msg := range messages {
		if msg.Content != "" && DisplayRole(msg.Role) {
			filtered = append(filtered, msg)
		}
	}
	if len(filtered) == 0 {
		return nil, nil
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp < filtered[j].Timestamp
	})

	conv := &Conversation{
		File:             name,
		SHA256:           digest,
		Title:            doc.Title,
		RemoteID:         doc.RemoteID,
		CreationDate:     doc.CreationDate,
		ModificationDate: doc.ModificationDate,
		IsArchived:       doc.IsArchived,
		Model:            doc.Configuration.LastModel,
		Messages:         filtered,
		MessageCount:     len(filtered),
	}
	if conv.Title == "" {
		conv.Title = "Untitled Conversation"
	}
	if conv.Model == "" {
		conv.Model = "unknown"
	}
	for _, msg := range filtered {
		switch msg.Role {
		case "user":
			conv.UserMessageCount++
		case "assistant":
			conv.AssistantMessageCount++
		}
	}
	return conv, nil
}

// ExtractAll reconstructs every document in dir (flat, non-recursive).
// Per-file failures are recorded and skipped; only an unreadable directory
// fails the run.
func (e *Extractor) ExtractAll(dir string) ([]*Conversation, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &StorageError{Path: dir, Op: "open", Err: err}
	}

	var conversations []*Conversation
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		e.stats.FilesTotal++

		conv, err := e.ExtractOne(filepath.Join(dir, entry.Name()))
		if err != nil {
			e.stats.FilesFailed++
			e.stats.Errors = append(e.stats.Errors, err.Error())
			LogWarn("Skipping %s: %v", entry.Name(), err)
			continue
		}
		e.stats.FilesProcessed++
		if conv == nil {
			LogDebug("No messages in %s", entry.Name())
			continue
		}
		if !e.opts.includes(CocoaTime(conv.CreationDate)) {
			LogDebug("Outside date range: %s", entry.Name())
			continue
		}

		conversations = append(conversations, conv)
		e.stats.MessageTotal += conv.MessageCount
	}

	// Newest first. ReadDir yields names sorted, which keeps equal
	// timestamps in a stable, repeatable order.
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].CreationDate > conversations[j].CreationDate
	})
	return conversations, nil
}

// NewRun wraps an extraction's outputs for the report layer.
func (e *Extractor) NewRun(dir string, device DeviceInfo, caseInfo CaseInfo, conversations []*Conversation) *Run {
	return &Run{
		GeneratedAt:   time.Now(),
		SourceDir:     dir,
		Device:        device,
		Case:          caseInfo,
		Conversations: conversations,
		Stats:         e.stats,
		Hashes:        e.hashes,
	}
}

// includes reports whether a record created at t falls inside the
// configured calendar-date range, inclusive on both ends.
func (o Options) includes(t time.Time) bool {
	day := dateOnly(t)
	if !o.DateFrom.IsZero() && day.Before(dateOnly(o.DateFrom)) {
		return false
	}
	if !o.DateTo.IsZero() && day.After(dateOnly(o.DateTo)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HashDirectory computes the sha256 digest of every document file in dir,
// keyed by file name. Used by catalog verification to re-derive the hash
// map without a full extraction.
func HashDirectory(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &StorageError{Path: dir, Op: "open", Err: err}
	}

	hashes := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, &StorageError{Path: entry.Name(), Op: "read", Err: err}
		}
		sum := sha256.Sum256(data)
		hashes[entry.Name()] = hex.EncodeToString(sum[:])
	}
	return hashes, nil
}

// ParseReportDate parses a YYYY-MM-DD date-range bound.
func ParseReportDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
