package internal

import (
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Catalog is the SQLite evidence catalog. Each extraction run is recorded
// with its statistics and per-file hashes so a later run over the same
// evidence can be verified byte-for-byte.
type Catalog struct {
	db *sql.DB
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	recorded_at INTEGER NOT NULL,
	source_dir TEXT NOT NULL,
	files_total INTEGER NOT NULL,
	files_processed INTEGER NOT NULL,
	files_failed INTEGER NOT NULL,
	message_total INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS file_hashes (
	run_id TEXT NOT NULL REFERENCES runs(id),
	filename TEXT NOT NULL,
	sha256 TEXT NOT NULL,
	PRIMARY KEY (run_id, filename)
);
`

// OpenCatalog opens (creating if needed) the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &CatalogError{Op: "open", Err: err}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &CatalogError{Op: "open", Err: err}
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, &CatalogError{Op: "open", Err: err}
	}
	return &Catalog{db: db}, nil
}

// Close closes the catalog database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// RunRecord is one recorded extraction run.
type RunRecord struct {
	ID             string
	RecordedAt     time.Time
	SourceDir      string
	FilesTotal     int
	FilesProcessed int
	FilesFailed    int
	MessageTotal   int
}

// RecordRun stores a run and its file hashes, returning the run id.
func (c *Catalog) RecordRun(run *Run) (string, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return "", &CatalogError{Op: "record", Err: err}
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.Exec(
		`INSERT INTO runs (id, recorded_at, source_dir, files_total, files_processed, files_failed, message_total)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, run.GeneratedAt.Unix(), run.SourceDir,
		run.Stats.FilesTotal, run.Stats.FilesProcessed, run.Stats.FilesFailed, run.Stats.MessageTotal,
	)
	if err != nil {
		return "", &CatalogError{Op: "record", Err: err}
	}

	for filename, digest := range run.Hashes {
		if _, err := tx.Exec(
			"INSERT INTO file_hashes (run_id, filename, sha256) VALUES (?, ?, ?)",
			id, filename, digest,
		); err != nil {
			return "", &CatalogError{Op: "record", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", &CatalogError{Op: "record", Err: err}
	}
	return id, nil
}

// LatestRun returns the most recently recorded run for a source directory,
// or nil when none exists.
func (c *Catalog) LatestRun(sourceDir string) (*RunRecord, error) {
	row := c.db.QueryRow(
		`SELECT id, recorded_at, source_dir, files_total, files_processed, files_failed, message_total
		 FROM runs WHERE source_dir = ? ORDER BY recorded_at DESC, id DESC LIMIT 1`,
		sourceDir,
	)

	var rec RunRecord
	var recordedAt int64
	err := row.Scan(&rec.ID, &recordedAt, &rec.SourceDir,
		&rec.FilesTotal, &rec.FilesProcessed, &rec.FilesFailed, &rec.MessageTotal)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &CatalogError{Op: "query", Err: err}
	}
	rec.RecordedAt = time.Unix(recordedAt, 0).UTC()
	return &rec, nil
}

// RunHashes returns the file hashes recorded for one run.
func (c *Catalog) RunHashes(runID string) (map[string]string, error) {
	rows, err := c.db.Query("SELECT filename, sha256 FROM file_hashes WHERE run_id = ?", runID)
	if err != nil {
		return nil, &CatalogError{Op: "query", Err: err}
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var filename, digest string
		if err := rows.Scan(&filename, &digest); err != nil {
			return nil, &CatalogError{Op: "query", Err: err}
		}
		hashes[filename] = digest
	}
	if err := rows.Err(); err != nil {
		return nil, &CatalogError{Op: "query", Err: err}
	}
	return hashes, nil
}

// VerifyResult is the outcome of comparing current evidence against a
// recorded run.
type VerifyResult struct {
	Run     *RunRecord
	Matched []string
	Changed []string
	Missing []string
	Added   []string
}

// Clean reports whether the evidence is unchanged since the recorded run.
func (v *VerifyResult) Clean() bool {
	return len(v.Changed) == 0 && len(v.Missing) == 0 && len(v.Added) == 0
}

// Verify compares the current per-file hashes of a source directory
// against its most recent recorded run. Returns nil when the directory has
// no recorded run.
func (c *Catalog) Verify(sourceDir string, current map[string]string) (*VerifyResult, error) {
	rec, err := c.LatestRun(sourceDir)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	recorded, err := c.RunHashes(rec.ID)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{Run: rec}
	for filename, digest := range recorded {
		got, ok := current[filename]
		switch {
		case !ok:
			result.Missing = append(result.Missing, filename)
		case got != digest:
			result.Changed = append(result.Changed, filename)
		default:
			result.Matched = append(result.Matched, filename)
		}
	}
	for filename := range current {
		if _, ok := recorded[filename]; !ok {
			result.Added = append(result.Added, filename)
		}
	}

	sort.Strings(result.Matched)
	sort.Strings(result.Changed)
	sort.Strings(result.Missing)
	sort.Strings(result.Added)
	return result, nil
}
