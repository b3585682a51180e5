package ports

import (
	"context"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
	"github.com/kavaklabs/travel-assistant/internal/core/vocabulary"
)

// Embedder builds vectors for documents and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore performs semantic search and owns collection lifecycle.
// Search must return an empty slice, not an error, on zero hits. A nil
// filter means unconstrained retrieval.
type VectorStore interface {
	Search(ctx context.Context, collection, queryText string, vector []float32, limit int, filter domain.Filters, mode domain.SearchMode) ([]domain.Document, error)
	EnsureFilterIndexes(ctx context.Context, collection string) error
	CreateCollection(ctx context.Context, collection string, vectorSize int) error
	UpsertDocuments(ctx context.Context, collection string, docs []domain.Document, vectors [][]float32) error
}

// QueryClassifier labels a query as flight_only, info_only, or both.
type QueryClassifier interface {
	Classify(ctx context.Context, query string) (domain.QueryType, error)
}

// FilterSynthesizer turns free text plus the vocabulary into a filter
// object whose keys are a subset of the vocabulary's field set.
type FilterSynthesizer interface {
	SynthesizeFilters(ctx context.Context, query string, options vocabulary.Options) (domain.Filters, error)
}

// Reranker reorders candidates by relevance to the query, bounded by topN.
type Reranker interface {
	Rerank(ctx context.Context, query string, docs []domain.Document, topN int) ([]domain.Document, error)
}

// AnswerGenerator creates the final grounded answer from context documents.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, query string, docs []domain.Document) (string, error)
}

// MessageQueue publishes/consumes ingestion job events.
type MessageQueue interface {
	PublishIngestionJob(ctx context.Context, jobID string) error
	SubscribeIngestionJobs(ctx context.Context, handler func(context.Context, string) error) error
}

// IngestionJobStore persists ingestion job state.
type IngestionJobStore interface {
	Create(ctx context.Context, job *domain.IngestionJob) error
	GetByID(ctx context.Context, id string) (*domain.IngestionJob, error)
	UpdateStatus(ctx context.Context, id string, status domain.IngestionStatus, errMessage string) error
	SetDocumentCount(ctx context.Context, id string, count int) error
}

// DocumentExtractor reads a source file into documents ready for indexing.
type DocumentExtractor interface {
	Extract(ctx context.Context, path string, fileType domain.FileType) ([]domain.Document, error)
}
