package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
	"github.com/kavaklabs/travel-assistant/internal/core/ports"
	"github.com/kavaklabs/travel-assistant/internal/observability/metrics"
)

type Router struct {
	searchUC     ports.SearchService
	ingestUC     ports.IngestionService
	collectionUC ports.CollectionService
	jobs         ports.IngestionJobStore

	service string
	metrics *metrics.HTTPServerMetrics
	limiter *rate.Limiter
}

type Options struct {
	Service string
	Metrics *metrics.HTTPServerMetrics
	Limiter *rate.Limiter
}

func NewRouter(
	searchUC ports.SearchService,
	ingestUC ports.IngestionService,
	collectionUC ports.CollectionService,
	jobs ports.IngestionJobStore,
	options Options,
) *Router {
	service := options.Service
	if service == "" {
		service = "api"
	}
	return &Router{
		searchUC:     searchUC,
		ingestUC:     ingestUC,
		collectionUC: collectionUC,
		jobs:         jobs,
		service:      service,
		metrics:      options.Metrics,
		limiter:      options.Limiter,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/search", rt.search)
	mux.HandleFunc("/v1/collections", rt.createCollection)
	mux.HandleFunc("/v1/ingest", rt.submitIngestion)
	mux.HandleFunc("/v1/ingest/", rt.getIngestionJob)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	handler = rateLimitMiddleware(rt.limiter, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type searchRequest struct {
	Query      string `json:"query"`
	Collection string `json:"collection_name"`
}

type searchResponse struct {
	Answer         string         `json:"answer"`
	QueryType      string         `json:"query_type"`
	Filters        domain.Filters `json:"filters_applied"`
	DocumentsUsed  int            `json:"documents_used"`
	ProcessingTime float64        `json:"processing_time"`
}

func (rt *Router) search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	outcome, err := rt.searchUC.Run(r.Context(), req.Query, req.Collection)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	elapsed := time.Since(start)
	if rt.metrics != nil {
		rt.metrics.RecordSearchObservation(
			rt.service,
			string(outcome.QueryType),
			outcome.DocumentsUsed,
			len(outcome.Filters),
			elapsed,
		)
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Answer:         outcome.Answer,
		QueryType:      string(outcome.QueryType),
		Filters:        outcome.Filters,
		DocumentsUsed:  outcome.DocumentsUsed,
		ProcessingTime: elapsed.Seconds(),
	})
}

type createCollectionRequest struct {
	Collection string `json:"collection_name"`
}

func (rt *Router) createCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	vectorSize, err := rt.collectionUC.Create(r.Context(), req.Collection)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"collection_name": req.Collection,
		"vector_size":     vectorSize,
		"status":          "created",
	})
}

type ingestRequest struct {
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	Collection string `json:"collection_name"`
}

func (rt *Router) submitIngestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	job, err := rt.ingestUC.Submit(r.Context(), req.Filename, domain.FileType(req.FileType), req.Collection)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, job)
}

func (rt *Router) getIngestionJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/ingest/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "job id is required"})
		return
	}

	job, err := rt.jobs.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
