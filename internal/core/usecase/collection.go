package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
	"github.com/kavaklabs/travel-assistant/internal/core/ports"
)

// CollectionUseCase manages vector store collections for travel corpora.
type CollectionUseCase struct {
	vectorDB   ports.VectorStore
	vectorSize int
}

func NewCollectionUseCase(vectorDB ports.VectorStore, vectorSize int) *CollectionUseCase {
	if vectorSize <= 0 {
		vectorSize = 768
	}
	return &CollectionUseCase{vectorDB: vectorDB, vectorSize: vectorSize}
}

// Create normalizes the collection name, creates the collection, and sets
// up the payload indexes needed for hard filtering.
func (uc *CollectionUseCase) Create(ctx context.Context, collection string) (int, error) {
	name, err := NormalizeCollectionName(collection)
	if err != nil {
		return 0, err
	}

	if err := uc.vectorDB.CreateCollection(ctx, name, uc.vectorSize); err != nil {
		return 0, fmt.Errorf("create collection: %w", err)
	}
	if err := uc.vectorDB.EnsureFilterIndexes(ctx, name); err != nil {
		return 0, fmt.Errorf("create filter indexes: %w", err)
	}
	return uc.vectorSize, nil
}

// NormalizeCollectionName lowercases the name and folds spaces and hyphens
// to underscores. Only alphanumerics and underscores survive validation.
func NormalizeCollectionName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "normalize collection name", errors.New("empty collection name"))
	}
	clean := strings.ToLower(name)
	clean = strings.ReplaceAll(clean, " ", "_")
	clean = strings.ReplaceAll(clean, "-", "_")

	stripped := strings.ReplaceAll(clean, "_", "")
	for _, r := range stripped {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "", domain.WrapError(
				domain.ErrInvalidInput,
				"normalize collection name",
				fmt.Errorf("invalid collection name %q", name),
			)
		}
	}
	return clean, nil
}
