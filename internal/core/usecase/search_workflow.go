package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
	"github.com/kavaklabs/travel-assistant/internal/core/ports"
	"github.com/kavaklabs/travel-assistant/internal/core/vocabulary"
)

type workflowState string

const (
	stateClassifyQuery    workflowState = "classify_query"
	stateGenerateFilters  workflowState = "generate_filters"
	stateSimpleRetrieval  workflowState = "simple_retrieval"
	stateApplyHardFilters workflowState = "apply_hard_filters"
	stateRerankDocuments  workflowState = "rerank_documents"
	stateMergeDocuments   workflowState = "merge_documents"
	stateGenerateAnswer   workflowState = "generate_answer"
	stateDone             workflowState = "done"
)

// staticNext holds every edge except the classifier's dynamic routing.
var staticNext = map[workflowState]workflowState{
	stateGenerateFilters:  stateApplyHardFilters,
	stateApplyHardFilters: stateRerankDocuments,
	stateRerankDocuments:  stateMergeDocuments,
	stateSimpleRetrieval:  stateMergeDocuments,
	stateMergeDocuments:   stateGenerateAnswer,
	stateGenerateAnswer:   stateDone,
}

// classifyNext routes out of classify_query by query type. The fallback
// default for classification failures lives in classifyQuery, not here.
var classifyNext = map[domain.QueryType]workflowState{
	domain.QueryFlightOnly: stateGenerateFilters,
	domain.QueryBoth:       stateGenerateFilters,
	domain.QueryInfoOnly:   stateSimpleRetrieval,
}

// requestState is owned exclusively by the workflow for the lifetime of one
// request. Each node writes only the fields it owns; data flows forward.
type requestState struct {
	query         string
	collection    string
	queryType     domain.QueryType
	filterOptions vocabulary.Options
	filters       domain.Filters
	filteredDocs  []domain.Document
	infoDocs      []domain.Document
	rerankedDocs  []domain.Document
	answer        string
}

// Caps bound result set sizes per retrieval path.
type Caps struct {
	FilteredTopK  int
	SimpleTopK    int
	RerankTopN    int
	InfoMergeTopN int
	BothMergeTopN int
}

func (c Caps) withDefaults() Caps {
	if c.FilteredTopK <= 0 {
		c.FilteredTopK = 20
	}
	if c.SimpleTopK <= 0 {
		c.SimpleTopK = 10
	}
	if c.RerankTopN <= 0 {
		c.RerankTopN = 10
	}
	if c.InfoMergeTopN <= 0 {
		c.InfoMergeTopN = 10
	}
	if c.BothMergeTopN <= 0 {
		c.BothMergeTopN = 15
	}
	return c
}

// SearchWorkflow drives one query through classification, filter synthesis,
// retrieval, reranking, merging, and answer generation. Every node catches
// its own collaborator failures and degrades to a documented default, so a
// request that passes input validation always terminates with an answer.
type SearchWorkflow struct {
	classifier  ports.QueryClassifier
	synthesizer ports.FilterSynthesizer
	embedder    ports.Embedder
	vectorDB    ports.VectorStore
	reranker    ports.Reranker
	generator   ports.AnswerGenerator
	caps        Caps
	simpleMode  domain.SearchMode
}

func NewSearchWorkflow(
	classifier ports.QueryClassifier,
	synthesizer ports.FilterSynthesizer,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	reranker ports.Reranker,
	generator ports.AnswerGenerator,
	caps Caps,
	simpleMode domain.SearchMode,
) *SearchWorkflow {
	if simpleMode != domain.SearchHybrid {
		simpleMode = domain.SearchDense
	}
	return &SearchWorkflow{
		classifier:  classifier,
		synthesizer: synthesizer,
		embedder:    embedder,
		vectorDB:    vectorDB,
		reranker:    reranker,
		generator:   generator,
		caps:        caps.withDefaults(),
		simpleMode:  simpleMode,
	}
}

func (w *SearchWorkflow) Run(ctx context.Context, query, collection string) (domain.SearchOutcome, error) {
	query = strings.TrimSpace(query)
	collection = strings.TrimSpace(collection)
	if query == "" {
		return domain.SearchOutcome{}, domain.WrapError(domain.ErrInvalidInput, "run search", errors.New("empty query"))
	}
	if collection == "" {
		return domain.SearchOutcome{}, domain.WrapError(domain.ErrInvalidInput, "run search", errors.New("empty collection name"))
	}

	st := &requestState{
		query:         query,
		collection:    collection,
		queryType:     domain.QueryBoth,
		filterOptions: vocabulary.Get(),
		filters:       domain.Filters{},
	}

	for current := stateClassifyQuery; current != stateDone; {
		current = w.step(ctx, current, st)
	}

	return domain.SearchOutcome{
		Answer:        st.answer,
		QueryType:     st.queryType,
		Filters:       st.filters,
		DocumentsUsed: len(st.rerankedDocs),
	}, nil
}

func (w *SearchWorkflow) step(ctx context.Context, current workflowState, st *requestState) workflowState {
	switch current {
	case stateClassifyQuery:
		w.classifyQuery(ctx, st)
		return classifyNext[st.queryType]
	case stateGenerateFilters:
		w.generateFilters(ctx, st)
	case stateApplyHardFilters:
		w.applyHardFilters(ctx, st)
	case stateSimpleRetrieval:
		w.simpleRetrieval(ctx, st)
	case stateRerankDocuments:
		w.rerankDocuments(ctx, st)
	case stateMergeDocuments:
		w.mergeDocuments(ctx, st)
	case stateGenerateAnswer:
		w.generateAnswer(ctx, st)
	}
	return staticNext[current]
}

func (w *SearchWorkflow) classifyQuery(ctx context.Context, st *requestState) {
	queryType, err := w.classifier.Classify(ctx, st.query)
	if err != nil {
		slog.Warn("query classification degraded to both", "error", err)
		st.queryType = domain.QueryBoth
		return
	}
	st.queryType = queryType
}

func (w *SearchWorkflow) generateFilters(ctx context.Context, st *requestState) {
	filters, err := w.synthesizer.SynthesizeFilters(ctx, st.query, st.filterOptions)
	if err != nil {
		slog.Warn("filter synthesis degraded to empty filter", "error", err)
		st.filters = domain.Filters{}
		return
	}
	st.filters = cleanFilters(filters)
}

// cleanFilters strips nulls and any key outside the vocabulary's field set.
func cleanFilters(filters domain.Filters) domain.Filters {
	out := domain.Filters{}
	for field, value := range filters {
		if value == nil {
			continue
		}
		if !vocabulary.FieldAllowed(field) {
			continue
		}
		out[field] = value
	}
	return out
}

func (w *SearchWorkflow) applyHardFilters(ctx context.Context, st *requestState) {
	st.filteredDocs = []domain.Document{}

	if err := w.vectorDB.EnsureFilterIndexes(ctx, st.collection); err != nil {
		slog.Warn("could not ensure filter indexes", "collection", st.collection, "error", err)
	}

	vector, err := w.embedder.EmbedQuery(ctx, st.query)
	if err != nil {
		slog.Error("embed query for filtered retrieval failed", "error", err)
		return
	}

	docs, err := w.vectorDB.Search(ctx, st.collection, st.query, vector, w.caps.FilteredTopK, st.filters, domain.SearchDense)
	if err != nil {
		slog.Error("filtered retrieval failed", "error", err)
		return
	}

	// Over-constrained filters must never dead-end the pipeline: an empty
	// result for a non-empty filter retries the identical query unfiltered.
	if len(docs) == 0 && len(st.filters) > 0 {
		slog.Warn("no documents matched filters, retrying unconstrained", "filters", st.filters)
		docs, err = w.vectorDB.Search(ctx, st.collection, st.query, vector, w.caps.FilteredTopK, nil, domain.SearchDense)
		if err != nil {
			slog.Error("unconstrained fallback retrieval failed", "error", err)
			return
		}
	}
	if docs != nil {
		st.filteredDocs = docs
	}
}

func (w *SearchWorkflow) simpleRetrieval(ctx context.Context, st *requestState) {
	st.infoDocs = []domain.Document{}

	vector, err := w.embedder.EmbedQuery(ctx, st.query)
	if err != nil {
		slog.Error("embed query for simple retrieval failed", "error", err)
		return
	}

	docs, err := w.vectorDB.Search(ctx, st.collection, st.query, vector, w.caps.SimpleTopK, nil, w.simpleMode)
	if err != nil {
		slog.Error("simple retrieval failed", "error", err)
		return
	}
	if docs != nil {
		st.infoDocs = docs
	}
}

func (w *SearchWorkflow) rerankDocuments(ctx context.Context, st *requestState) {
	st.rerankedDocs = w.rerankOrIdentity(ctx, st.query, st.filteredDocs, w.caps.RerankTopN)
}

// mergeDocuments is the single convergence point of the two retrieval
// paths and the last chance to bound context size before answering. Note
// that the flight path deliberately passes filtered_docs through, ignoring
// the dedicated rerank state's output; this pins the observed behavior of
// the workflow and must not be "fixed" without a product decision.
func (w *SearchWorkflow) mergeDocuments(ctx context.Context, st *requestState) {
	switch st.queryType {
	case domain.QueryFlightOnly:
		st.rerankedDocs = st.filteredDocs
	case domain.QueryInfoOnly:
		st.rerankedDocs = w.rerankOrIdentity(ctx, st.query, st.infoDocs, w.caps.InfoMergeTopN)
	default:
		combined := make([]domain.Document, 0, len(st.filteredDocs)+len(st.infoDocs))
		combined = append(combined, st.filteredDocs...)
		combined = append(combined, st.infoDocs...)
		st.rerankedDocs = w.rerankOrIdentity(ctx, st.query, combined, w.caps.BothMergeTopN)
	}
}

// rerankOrIdentity delegates to the relevance judge and degrades to the
// identity ordering of the input, truncated to the cap, on any failure.
func (w *SearchWorkflow) rerankOrIdentity(ctx context.Context, query string, docs []domain.Document, topN int) []domain.Document {
	if len(docs) == 0 {
		return []domain.Document{}
	}
	if topN > len(docs) {
		topN = len(docs)
	}

	reranked, err := w.reranker.Rerank(ctx, query, docs, topN)
	if err != nil || reranked == nil {
		if err != nil {
			slog.Warn("reranking degraded to identity order", "error", err)
		}
		out := make([]domain.Document, topN)
		copy(out, docs[:topN])
		return out
	}
	if len(reranked) > topN {
		reranked = reranked[:topN]
	}
	return reranked
}

const noContextAnswer = "I couldn't find any relevant information to answer your query."

func (w *SearchWorkflow) generateAnswer(ctx context.Context, st *requestState) {
	if len(st.rerankedDocs) == 0 {
		st.answer = noContextAnswer
		return
	}

	answer, err := w.generator.GenerateAnswer(ctx, st.query, st.rerankedDocs)
	if err != nil {
		slog.Error("answer generation failed", "error", err)
		st.answer = degradedAnswer(st.query, len(st.rerankedDocs))
		return
	}
	st.answer = answer
}

// degradedAnswer is the deterministic text returned when the language model
// fails after retrieval succeeded.
func degradedAnswer(query string, documentCount int) string {
	return fmt.Sprintf(
		"Based on the %d relevant documents found, here's what I can tell you about '%s': [LLM generation failed]",
		documentCount, query,
	)
}
