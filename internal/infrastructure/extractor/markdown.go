package extractor

import (
	"fmt"
	"os"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

func (e *Extractor) extractMarkdown(path string) ([]domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown file: %w", err)
	}
	return e.chunkDocuments(string(raw), path, "markdown"), nil
}
