package config

import "testing"

func TestLoadIncludesSearchDefaults(t *testing.T) {
	t.Setenv("SEARCH_FILTERED_TOP_K", "")
	t.Setenv("SEARCH_SIMPLE_TOP_K", "")
	t.Setenv("SEARCH_RERANK_TOP_N", "")
	t.Setenv("SEARCH_BOTH_MERGE_TOP_N", "")
	t.Setenv("SEARCH_MODE", "")
	t.Setenv("EMBEDDING_DIMENSIONS", "")

	cfg := Load()
	if cfg.SearchFilteredTopK != 20 {
		t.Fatalf("expected default filtered top k 20, got %d", cfg.SearchFilteredTopK)
	}
	if cfg.SearchSimpleTopK != 10 {
		t.Fatalf("expected default simple top k 10, got %d", cfg.SearchSimpleTopK)
	}
	if cfg.SearchRerankTopN != 10 {
		t.Fatalf("expected default rerank top n 10, got %d", cfg.SearchRerankTopN)
	}
	if cfg.SearchBothMergeTopN != 15 {
		t.Fatalf("expected default both merge top n 15, got %d", cfg.SearchBothMergeTopN)
	}
	if cfg.SearchMode != "dense" {
		t.Fatalf("expected default search mode dense, got %q", cfg.SearchMode)
	}
	if cfg.EmbeddingDims != 768 {
		t.Fatalf("expected default embedding dimensions 768, got %d", cfg.EmbeddingDims)
	}
}

func TestLoadParsesSearchOverrides(t *testing.T) {
	t.Setenv("SEARCH_FILTERED_TOP_K", "40")
	t.Setenv("SEARCH_MODE", "hybrid")
	t.Setenv("LLM_RATE_PER_SECOND", "2.5")
	t.Setenv("GEMINI_CHAT_MODEL", "gemini-2.5-pro")

	cfg := Load()
	if cfg.SearchFilteredTopK != 40 {
		t.Fatalf("expected filtered top k 40, got %d", cfg.SearchFilteredTopK)
	}
	if cfg.SearchMode != "hybrid" {
		t.Fatalf("expected search mode hybrid, got %q", cfg.SearchMode)
	}
	if cfg.LLMRatePerSecond != 2.5 {
		t.Fatalf("expected llm rate 2.5, got %v", cfg.LLMRatePerSecond)
	}
	if cfg.GeminiChatModel != "gemini-2.5-pro" {
		t.Fatalf("expected chat model override, got %q", cfg.GeminiChatModel)
	}
}

func TestLoadFallsBackOnMalformedNumbers(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")
	t.Setenv("HTTP_RATE_PER_SECOND", "nope")

	cfg := Load()
	if cfg.ChunkSize != 1000 {
		t.Fatalf("expected chunk size fallback 1000, got %d", cfg.ChunkSize)
	}
	if cfg.HTTPRatePerSecond != 10 {
		t.Fatalf("expected http rate fallback 10, got %v", cfg.HTTPRatePerSecond)
	}
}
