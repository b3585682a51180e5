package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/kavaklabs/travel-assistant/internal/config"
	"github.com/kavaklabs/travel-assistant/internal/core/domain"
	"github.com/kavaklabs/travel-assistant/internal/core/ports"
	"github.com/kavaklabs/travel-assistant/internal/core/usecase"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/chunking"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/extractor"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/llm/gemini"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/queue/nats"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/repository/postgres"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/resilience"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/vector/qdrant"
	"github.com/kavaklabs/travel-assistant/internal/observability/logging"
)

// App holds the wired dependency graph shared by the api and worker
// binaries. Both sides talk to the same Postgres job table and NATS
// subject, so they are built from one place.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue        ports.MessageQueue
	Jobs         ports.IngestionJobStore
	SearchUC     ports.SearchService
	IngestUC     ports.IngestionService
	CollectionUC ports.CollectionService

	HTTPLimiter *rate.Limiter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	jobs := postgres.NewIngestionJobRepository(db)
	if err := jobs.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	llmClient := gemini.New(gemini.Config{
		APIKey:            cfg.GeminiAPIKey,
		BaseURL:           cfg.GeminiBaseURL,
		ChatModel:         cfg.GeminiChatModel,
		EmbedModel:        cfg.GeminiEmbedModel,
		Dimensions:        cfg.EmbeddingDims,
		RequestsPerSecond: cfg.LLMRatePerSecond,
		Burst:             cfg.LLMRateBurst,
		Executor:          executor,
	})
	classifier := gemini.NewClassifier(llmClient)
	synthesizer := gemini.NewFilterSynthesizer(llmClient)
	reranker := gemini.NewReranker(llmClient)
	generator := gemini.NewGenerator(llmClient)
	embedder := gemini.NewEmbedder(llmClient)

	vectorDB := qdrant.New(cfg.QdrantURL, cfg.QdrantAPIKey)

	splitter := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	docExtractor := extractor.New(splitter)

	searchUC := usecase.NewSearchWorkflow(
		classifier,
		synthesizer,
		embedder,
		vectorDB,
		reranker,
		generator,
		usecase.Caps{
			FilteredTopK:  cfg.SearchFilteredTopK,
			SimpleTopK:    cfg.SearchSimpleTopK,
			RerankTopN:    cfg.SearchRerankTopN,
			InfoMergeTopN: cfg.SearchInfoMergeTopN,
			BothMergeTopN: cfg.SearchBothMergeTopN,
		},
		domain.SearchMode(cfg.SearchMode),
	)
	ingestUC := usecase.NewIngestionUseCase(jobs, queue, docExtractor, embedder, vectorDB, cfg.DataRoot, cfg.IngestBatchSize)
	collectionUC := usecase.NewCollectionUseCase(vectorDB, cfg.EmbeddingDims)

	var httpLimiter *rate.Limiter
	if cfg.HTTPRatePerSecond > 0 {
		httpLimiter = rate.NewLimiter(rate.Limit(cfg.HTTPRatePerSecond), cfg.HTTPRateBurst)
	}

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:        queue,
		Jobs:         jobs,
		SearchUC:     searchUC,
		IngestUC:     ingestUC,
		CollectionUC: collectionUC,

		HTTPLimiter: httpLimiter,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
