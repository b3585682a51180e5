package domain

import "time"

type FileType string

const (
	FileTypeJSON     FileType = "json"
	FileTypeMarkdown FileType = "markdown"
	FileTypePDF      FileType = "pdf"
	FileTypeXLSX     FileType = "xlsx"
)

func (t FileType) Valid() bool {
	switch t {
	case FileTypeJSON, FileTypeMarkdown, FileTypePDF, FileTypeXLSX:
		return true
	default:
		return false
	}
}

type IngestionStatus string

const (
	IngestionPending    IngestionStatus = "pending"
	IngestionProcessing IngestionStatus = "processing"
	IngestionReady      IngestionStatus = "ready"
	IngestionFailed     IngestionStatus = "failed"
)

// IngestionJob tracks one file-to-collection ingestion request from the API
// through the worker.
type IngestionJob struct {
	ID            string          `json:"id"`
	Filename      string          `json:"filename"`
	FileType      FileType        `json:"file_type"`
	Collection    string          `json:"collection_name"`
	Status        IngestionStatus `json:"status"`
	DocumentCount int             `json:"documents_processed"`
	Error         string          `json:"error,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
