package internal

import "fmt"

// StorageError represents errors reading source files or directories
type StorageError struct {
	Path string
	Op   string // "open", "read"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DocumentError represents a malformed conversation document. The run
// records it and continues with the remaining files.
type DocumentError struct {
	File string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document error [%s]: %v", e.File, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// CatalogError represents errors accessing the evidence catalog
type CatalogError struct {
	Op  string // "open", "record", "query"
	Err error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog error: %s: %v", e.Op, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// ReportError represents errors rendering or writing a report
type ReportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
