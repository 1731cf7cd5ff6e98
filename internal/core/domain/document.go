package domain

import (
	"io"
	"os"
	"strings"
	"time"
)

// DocumentStatus is the backend processing state of a document.
type DocumentStatus string

const (
	// DocumentProcessing means the backend is still parsing and indexing.
	DocumentProcessing DocumentStatus = "processing"
	// DocumentCompleted means the document can be queried.
	DocumentCompleted DocumentStatus = "completed"
	// DocumentFailed means processing did not finish.
	DocumentFailed DocumentStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentProcessing, DocumentCompleted, DocumentFailed:
		return true
	}
	return false
}

// ParseDocumentStatus converts user input to a DocumentStatus.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	status := DocumentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", &ValidationError{Field: "status", Message: "status must be one of processing, completed, failed"}
	}
	return status, nil
}

// Document is the client-side view of an uploaded policy document.
type Document struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	FileURL     string         `json:"file_url"`
	FileSize    int64          `json:"file_size"`
	Status      DocumentStatus `json:"status"`
	Summary     string         `json:"summary,omitempty"`
	UploadedAt  time.Time      `json:"uploaded_at"`
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
}

// Ready reports whether the document can be queried.
func (d Document) Ready() bool {
	return d.Status == DocumentCompleted
}

// DocumentPatch carries the fields an update may change. Nil fields are
// left untouched by the backend.
type DocumentPatch struct {
	Name    *string         `json:"name,omitempty"`
	Status  *DocumentStatus `json:"status,omitempty"`
	Summary *string         `json:"summary,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p DocumentPatch) IsEmpty() bool {
	return p.Name == nil && p.Status == nil && p.Summary == nil
}

// UploadFile is a local file that passed drop-zone inspection.
type UploadFile struct {
	Name        string
	Path        string
	Size        int64
	ContentType string
	Pages       int
}

// Open returns a reader over the file contents.
func (f UploadFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}
