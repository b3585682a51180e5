package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/chunking"
)

// Extractor turns source files into documents ready for embedding. JSON
// files become one document per record with the record fields as
// filterable metadata; text-bearing formats are chunked.
type Extractor struct {
	splitter *chunking.Splitter
}

func New(splitter *chunking.Splitter) *Extractor {
	if splitter == nil {
		splitter = chunking.NewSplitter(1000, 200)
	}
	return &Extractor{splitter: splitter}
}

func (e *Extractor) Extract(ctx context.Context, path string, fileType domain.FileType) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkExtension(path, fileType); err != nil {
		return nil, err
	}

	switch fileType {
	case domain.FileTypeJSON:
		return e.extractJSON(path)
	case domain.FileTypeMarkdown:
		return e.extractMarkdown(path)
	case domain.FileTypePDF:
		return e.extractPDF(path)
	case domain.FileTypeXLSX:
		return e.extractXLSX(path)
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract", fmt.Errorf("unsupported file type %q", fileType))
	}
}

var allowedExtensions = map[domain.FileType][]string{
	domain.FileTypeJSON:     {".json"},
	domain.FileTypeMarkdown: {".md", ".markdown"},
	domain.FileTypePDF:      {".pdf"},
	domain.FileTypeXLSX:     {".xlsx"},
}

func checkExtension(path string, fileType domain.FileType) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range allowedExtensions[fileType] {
		if ext == allowed {
			return nil
		}
	}
	return domain.WrapError(
		domain.ErrInvalidInput,
		"extract",
		fmt.Errorf("file extension %q does not match declared type %q", ext, fileType),
	)
}

// chunkDocuments is shared by the text-bearing formats.
func (e *Extractor) chunkDocuments(content, path, documentType string) []domain.Document {
	chunks := e.splitter.Split(content)
	docs := make([]domain.Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, domain.Document{
			Content: chunk,
			Metadata: map[string]any{
				"source":        path,
				"document_type": documentType,
				"chunk_index":   i,
				"total_chunks":  len(chunks),
				"filename":      filepath.Base(path),
			},
		})
	}
	return docs
}
