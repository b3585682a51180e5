package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
	"github.com/kavaklabs/travel-assistant/internal/core/vocabulary"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/resilience"
)

// Client talks to Gemini through its OpenAI-compatible endpoint. One
// client is shared by every capability so they ride the same rate
// limiter and circuit breakers.
type Client struct {
	api        *openai.Client
	chatModel  string
	embedModel string
	dimensions int
	limiter    *rate.Limiter
	exec       *resilience.Executor
}

type Config struct {
	APIKey            string
	BaseURL           string
	ChatModel         string
	EmbedModel        string
	Dimensions        int
	RequestsPerSecond float64
	Burst             int
	Executor          *resilience.Executor
}

func New(cfg Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	limit := rate.Inf
	burst := 0
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = cfg.Burst
		if burst <= 0 {
			burst = 1
		}
	}

	exec := cfg.Executor
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultConfig())
	}

	return &Client{
		api:        openai.NewClientWithConfig(clientCfg),
		chatModel:  cfg.ChatModel,
		embedModel: cfg.EmbedModel,
		dimensions: cfg.Dimensions,
		limiter:    rate.NewLimiter(limit, burst),
		exec:       exec,
	}
}

func (c *Client) complete(ctx context.Context, operation, system, user string, jsonMode bool) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%s rate wait: %w", operation, err)
	}

	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var content string
	err := c.exec.Execute(ctx, operation, func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			return fmt.Errorf("gemini %s request: %w", operation, err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("gemini %s: empty choices", operation)
		}
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	}, classifyGeminiError)
	if err != nil {
		return "", wrapTemporaryIfNeeded(operation, err)
	}
	return content, nil
}

// Classifier labels travel queries by retrieval path.
type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

func (c *Classifier) Classify(ctx context.Context, query string) (domain.QueryType, error) {
	raw, err := c.client.complete(ctx, "classify", classifySystemPrompt, query, true)
	if err != nil {
		return "", err
	}

	var result struct {
		QueryType string `json:"query_type"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &result); err != nil {
		return "", fmt.Errorf("parse classification json: %w", err)
	}
	// Anything outside the label set folds to both.
	return domain.ParseQueryType(result.QueryType), nil
}

// FilterSynthesizer turns a query plus the filter vocabulary into a
// concrete filter object.
type FilterSynthesizer struct {
	client *Client
}

func NewFilterSynthesizer(client *Client) *FilterSynthesizer {
	return &FilterSynthesizer{client: client}
}

func (s *FilterSynthesizer) SynthesizeFilters(ctx context.Context, query string, options vocabulary.Options) (domain.Filters, error) {
	optionsJSON, err := json.MarshalIndent(options, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal filter options: %w", err)
	}

	raw, err := s.client.complete(ctx, "synthesize_filters", buildFilterSystemPrompt(string(optionsJSON), query), "Generate filters for this query.", true)
	if err != nil {
		return nil, err
	}

	var filters domain.Filters
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &filters); err != nil {
		return nil, fmt.Errorf("parse filters json: %w", err)
	}
	return filters, nil
}

// Reranker asks the model to reorder candidates by relevance. The model
// answers with document indexes, never document text, so a hallucinated
// answer can at worst reorder, not invent.
type Reranker struct {
	client *Client
}

func NewReranker(client *Client) *Reranker {
	return &Reranker{client: client}
}

func (r *Reranker) Rerank(ctx context.Context, query string, docs []domain.Document, topN int) ([]domain.Document, error) {
	if len(docs) == 0 {
		return []domain.Document{}, nil
	}
	if topN > len(docs) {
		topN = len(docs)
	}

	raw, err := r.client.complete(ctx, "rerank", buildRerankSystemPrompt(query, docs, topN), query, true)
	if err != nil {
		return nil, err
	}

	var result struct {
		Ranking []int `json:"ranking"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &result); err != nil {
		return nil, fmt.Errorf("parse rerank json: %w", err)
	}

	seen := make(map[int]bool, len(result.Ranking))
	out := make([]domain.Document, 0, topN)
	for _, idx := range result.Ranking {
		if idx < 0 || idx >= len(docs) || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, docs[idx])
		if len(out) == topN {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("rerank returned no usable indexes")
	}
	return out, nil
}

// Generator produces the final grounded answer.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) GenerateAnswer(ctx context.Context, query string, docs []domain.Document) (string, error) {
	return g.client.complete(ctx, "generate_answer", buildAnswerSystemPrompt(query, docs), query, false)
}

// Embedder builds dense vectors through the embeddings endpoint.
type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := e.client.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embed rate wait: %w", err)
	}

	req := openai.EmbeddingRequest{
		Input:          texts,
		Model:          openai.EmbeddingModel(e.client.embedModel),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.client.dimensions > 0 {
		req.Dimensions = e.client.dimensions
	}

	var vectors [][]float32
	err := e.client.exec.Execute(ctx, "embed", func(ctx context.Context) error {
		resp, err := e.client.api.CreateEmbeddings(ctx, req)
		if err != nil {
			return fmt.Errorf("gemini embed request: %w", err)
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("gemini embed: %d vectors for %d inputs", len(resp.Data), len(texts))
		}
		vectors = make([][]float32, len(resp.Data))
		for i, item := range resp.Data {
			vectors[i] = item.Embedding
		}
		return nil
	}, classifyGeminiError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded("embed", err)
	}
	return vectors, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return vectors[0], nil
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
