package extractor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

// extractJSON maps a JSON array to one document per object, carrying the
// object's own fields as metadata so flight attributes stay filterable.
// A single top-level object becomes a single document.
func (e *Extractor) extractJSON(path string) ([]domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}

	var anyValue any
	if err := json.Unmarshal(raw, &anyValue); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "parse json file", err)
	}

	switch value := anyValue.(type) {
	case []any:
		docs := make([]domain.Document, 0, len(value))
		for i, item := range value {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			doc, err := jsonRecordDocument(record, path, i, len(value))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		return docs, nil
	case map[string]any:
		doc, err := jsonRecordDocument(value, path, 0, 1)
		if err != nil {
			return nil, err
		}
		return []domain.Document{doc}, nil
	default:
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"parse json file",
			fmt.Errorf("unsupported json structure in %s", path),
		)
	}
}

func jsonRecordDocument(record map[string]any, path string, index, total int) (domain.Document, error) {
	content, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return domain.Document{}, fmt.Errorf("marshal json record: %w", err)
	}

	metadata := make(map[string]any, len(record)+4)
	for key, value := range record {
		metadata[key] = value
	}
	metadata["source"] = path
	metadata["document_type"] = "json"
	metadata["item_index"] = index
	metadata["total_items"] = total

	return domain.Document{
		Content:  string(content),
		Metadata: metadata,
	}, nil
}
