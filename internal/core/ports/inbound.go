package ports

import (
	"context"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

// SearchService runs the full search-and-answer workflow for one query.
type SearchService interface {
	Run(ctx context.Context, query, collection string) (domain.SearchOutcome, error)
}

// IngestionService accepts ingestion requests and processes queued jobs.
type IngestionService interface {
	Submit(ctx context.Context, filename string, fileType domain.FileType, collection string) (*domain.IngestionJob, error)
	ProcessByID(ctx context.Context, jobID string) error
}

// CollectionService manages vector store collections.
type CollectionService interface {
	Create(ctx context.Context, collection string) (vectorSize int, err error)
}
