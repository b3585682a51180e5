package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

// payloadContentKey holds the document text inside the point payload.
// Metadata fields sit beside it at the top level so payload indexes can
// filter on them directly.
const payloadContentKey = "content"

// filterIndexFields are the payload fields that get a dedicated index.
// They mirror the filter vocabulary, with prices indexed on price_usd.
var filterIndexFields = []struct {
	Name   string
	Schema string
}{
	{"airline", "keyword"},
	{"alliance", "keyword"},
	{"from_country", "keyword"},
	{"to_country", "keyword"},
	{"travel_class", "keyword"},
	{"price_usd", "integer"},
	{"refundable", "bool"},
	{"baggage_included", "bool"},
	{"wifi_available", "bool"},
	{"meal_service", "keyword"},
	{"aircraft_type", "keyword"},
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	ensureMu       sync.Mutex
	ensuredIndexes map[string]bool
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         apiKey,
		httpClient:     &http.Client{Timeout: 60 * time.Second},
		ensuredIndexes: make(map[string]bool),
	}
}

func (c *Client) Search(
	ctx context.Context,
	collection, queryText string,
	vector []float32,
	limit int,
	filter domain.Filters,
	mode domain.SearchMode,
) ([]domain.Document, error) {
	filterClause := compileFilter(filter)

	dense, err := c.searchDense(ctx, collection, vector, limit, filterClause)
	if err != nil {
		return nil, err
	}
	if mode != domain.SearchHybrid {
		return dense, nil
	}

	sparse, err := c.searchSparse(ctx, collection, queryText, limit, filterClause)
	if err != nil {
		// Hybrid is an enhancement over dense; a lexical leg failure
		// must not lose the dense results.
		slog.Warn("sparse search failed, returning dense results only", "collection", collection, "error", err)
		return dense, nil
	}
	return fuseRRF(dense, sparse, limit), nil
}

func (c *Client) searchDense(ctx context.Context, collection string, vector []float32, limit int, filterClause map[string]any) ([]domain.Document, error) {
	reqBody := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	if filterClause != nil {
		reqBody["filter"] = filterClause
	}
	return c.searchPoints(ctx, collection, reqBody, "dense search")
}

func (c *Client) searchSparse(ctx context.Context, collection, queryText string, limit int, filterClause map[string]any) ([]domain.Document, error) {
	sparse := encodeSparseText(queryText)
	if len(sparse.Indices) == 0 {
		return []domain.Document{}, nil
	}

	reqBody := map[string]any{
		"vector": map[string]any{
			"name":   "default",
			"vector": sparse,
		},
		"limit":        limit,
		"with_payload": true,
	}
	if filterClause != nil {
		reqBody["filter"] = filterClause
	}
	return c.searchPoints(ctx, collection, reqBody, "sparse search")
}

func (c *Client) searchPoints(ctx context.Context, collection string, reqBody map[string]any, operation string) ([]domain.Document, error) {
	var searchResp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}

	path := fmt.Sprintf("/collections/%s/points/search", collection)
	if err := c.do(ctx, http.MethodPost, path, reqBody, &searchResp, operation); err != nil {
		return nil, err
	}

	out := make([]domain.Document, 0, len(searchResp.Result))
	for _, r := range searchResp.Result {
		content, _ := r.Payload[payloadContentKey].(string)
		metadata := make(map[string]any, len(r.Payload))
		for key, value := range r.Payload {
			if key == payloadContentKey {
				continue
			}
			metadata[key] = value
		}
		out = append(out, domain.Document{
			ID:       fmt.Sprintf("%v", r.ID),
			Content:  content,
			Metadata: metadata,
			Score:    r.Score,
		})
	}
	return out, nil
}

// CreateCollection drops any existing collection of the same name and
// recreates it with a dense cosine vector plus a named sparse vector.
func (c *Client) CreateCollection(ctx context.Context, collection string, vectorSize int) error {
	path := "/collections/" + collection

	if err := c.do(ctx, http.MethodDelete, path, nil, nil, "delete collection"); err != nil {
		// A missing collection is the common case on first create.
		slog.Debug("delete before create skipped", "collection", collection, "error", err)
	}

	reqBody := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
		"sparse_vectors": map[string]any{
			"default": map[string]any{},
		},
	}
	if err := c.do(ctx, http.MethodPut, path, reqBody, nil, "create collection"); err != nil {
		return err
	}

	c.ensureMu.Lock()
	delete(c.ensuredIndexes, collection)
	c.ensureMu.Unlock()
	return nil
}

// EnsureFilterIndexes creates the payload indexes used for hard
// filtering. A missing collection is not an error; index creation per
// field is best-effort so one bad field cannot block the rest.
func (c *Client) EnsureFilterIndexes(ctx context.Context, collection string) error {
	c.ensureMu.Lock()
	if c.ensuredIndexes[collection] {
		c.ensureMu.Unlock()
		return nil
	}
	c.ensureMu.Unlock()

	exists, err := c.collectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		slog.Warn("collection does not exist, cannot create indexes", "collection", collection)
		return nil
	}

	for _, field := range filterIndexFields {
		reqBody := map[string]any{
			"field_name":   field.Name,
			"field_schema": field.Schema,
		}
		path := fmt.Sprintf("/collections/%s/index", collection)
		if err := c.do(ctx, http.MethodPut, path, reqBody, nil, "create payload index"); err != nil {
			slog.Warn("failed to create payload index", "field", field.Name, "error", err)
		}
	}

	c.ensureMu.Lock()
	c.ensuredIndexes[collection] = true
	c.ensureMu.Unlock()
	return nil
}

func (c *Client) UpsertDocuments(ctx context.Context, collection string, docs []domain.Document, vectors [][]float32) error {
	if len(docs) == 0 {
		return nil
	}
	if len(docs) != len(vectors) {
		return fmt.Errorf("documents/vectors mismatch: %d/%d", len(docs), len(vectors))
	}

	type point struct {
		ID      string         `json:"id"`
		Vector  map[string]any `json:"vector"`
		Payload map[string]any `json:"payload"`
	}

	points := make([]point, 0, len(docs))
	for i, doc := range docs {
		id := doc.ID
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		payload := make(map[string]any, len(doc.Metadata)+1)
		for key, value := range doc.Metadata {
			payload[key] = value
		}
		payload[payloadContentKey] = doc.Content

		points = append(points, point{
			ID: id,
			Vector: map[string]any{
				"":        vectors[i],
				"default": encodeSparseText(doc.Content),
			},
			Payload: payload,
		})
	}

	path := fmt.Sprintf("/collections/%s/points?wait=true", collection)
	return c.do(ctx, http.MethodPut, path, map[string]any{"points": points}, nil, "upsert points")
}

func (c *Client) collectionExists(ctx context.Context, collection string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/collections/"+collection, nil)
	if err != nil {
		return false, fmt.Errorf("create collection check request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("qdrant collection check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode >= 300 {
		return false, fmt.Errorf("qdrant collection check status: %s", resp.Status)
	}
	return true, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any, operation string) error {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", operation, err)
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if msg := strings.TrimSpace(string(body)); msg != "" {
			return fmt.Errorf("qdrant %s status: %s: %s", operation, resp.Status, msg)
		}
		return fmt.Errorf("qdrant %s status: %s", operation, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}
}
