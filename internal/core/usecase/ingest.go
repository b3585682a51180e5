package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
	"github.com/kavaklabs/travel-assistant/internal/core/ports"
)

// IngestionUseCase accepts file ingestion requests on the API side and
// runs the extract-embed-index pipeline on the worker side.
type IngestionUseCase struct {
	repo      ports.IngestionJobStore
	queue     ports.MessageQueue
	extractor ports.DocumentExtractor
	embedder  ports.Embedder
	vectorDB  ports.VectorStore
	dataRoot  string
	batchSize int
}

func NewIngestionUseCase(
	repo ports.IngestionJobStore,
	queue ports.MessageQueue,
	extractor ports.DocumentExtractor,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	dataRoot string,
	batchSize int,
) *IngestionUseCase {
	if batchSize <= 0 {
		batchSize = 64
	}
	return &IngestionUseCase{
		repo:      repo,
		queue:     queue,
		extractor: extractor,
		embedder:  embedder,
		vectorDB:  vectorDB,
		dataRoot:  dataRoot,
		batchSize: batchSize,
	}
}

// Submit validates the request, records a pending job, and queues it for
// the worker. Paths are confined to the configured data root.
func (uc *IngestionUseCase) Submit(
	ctx context.Context,
	filename string,
	fileType domain.FileType,
	collection string,
) (*domain.IngestionJob, error) {
	filename = strings.TrimSpace(filename)
	collection = strings.TrimSpace(collection)
	if filename == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit ingestion", errors.New("empty filename"))
	}
	if collection == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit ingestion", errors.New("empty collection name"))
	}
	if !fileType.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit ingestion", fmt.Errorf("unsupported file type %q", fileType))
	}
	if _, err := uc.resolvePath(filename); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &domain.IngestionJob{
		ID:         uuid.NewString(),
		Filename:   filename,
		FileType:   fileType,
		Collection: collection,
		Status:     domain.IngestionPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create ingestion job: %w", err)
	}
	if err := uc.queue.PublishIngestionJob(ctx, job.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion job: %w", err)
	}
	return job, nil
}

// ProcessByID runs the ingestion pipeline for a queued job.
func (uc *IngestionUseCase) ProcessByID(ctx context.Context, jobID string) error {
	if err := uc.repo.UpdateStatus(ctx, jobID, domain.IngestionProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	count, err := uc.processPipeline(ctx, jobID)
	if err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, jobID, domain.IngestionFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SetDocumentCount(ctx, jobID, count); err != nil {
		return fmt.Errorf("save document count: %w", err)
	}
	if err := uc.repo.UpdateStatus(ctx, jobID, domain.IngestionReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *IngestionUseCase) processPipeline(ctx context.Context, jobID string) (int, error) {
	job, err := uc.repo.GetByID(ctx, jobID)
	if err != nil {
		return 0, fmt.Errorf("fetch ingestion job: %w", err)
	}

	path, err := uc.resolvePath(job.Filename)
	if err != nil {
		return 0, err
	}

	docs, err := uc.extractor.Extract(ctx, path, job.FileType)
	if err != nil {
		return 0, fmt.Errorf("extract documents: %w", err)
	}
	if len(docs) == 0 {
		return 0, domain.WrapError(domain.ErrInvalidInput, "extract documents", errors.New("no documents produced"))
	}

	for start := 0; start < len(docs); start += uc.batchSize {
		end := start + uc.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for i, doc := range batch {
			texts[i] = doc.Content
		}
		vectors, err := uc.embedder.Embed(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("embed documents: %w", err)
		}
		if len(vectors) != len(batch) {
			return 0, domain.WrapError(
				domain.ErrInvalidInput,
				"embed documents",
				fmt.Errorf("vectors/documents mismatch: %d/%d", len(vectors), len(batch)),
			)
		}
		if err := uc.vectorDB.UpsertDocuments(ctx, job.Collection, batch, vectors); err != nil {
			return 0, fmt.Errorf("upsert documents: %w", err)
		}
	}

	return len(docs), nil
}

// resolvePath confines a requested filename to the data root.
func (uc *IngestionUseCase) resolvePath(filename string) (string, error) {
	root, err := filepath.Abs(uc.dataRoot)
	if err != nil {
		return "", fmt.Errorf("resolve data root: %w", err)
	}

	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", domain.WrapError(domain.ErrInvalidInput, "resolve file path", fmt.Errorf("path %q escapes data root", filename))
	}
	return path, nil
}
