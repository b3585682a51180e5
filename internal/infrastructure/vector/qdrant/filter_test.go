package qdrant

import (
	"testing"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

func TestCompileFilterEmptyYieldsNil(t *testing.T) {
	if got := compileFilter(nil); got != nil {
		t.Fatalf("expected nil filter, got %v", got)
	}
	if got := compileFilter(domain.Filters{}); got != nil {
		t.Fatalf("expected nil filter for empty map, got %v", got)
	}
}

func TestCompileFilterSingleConditionUsesMust(t *testing.T) {
	clause := compileFilter(domain.Filters{"airline": "Emirates"})
	must, ok := clause["must"].([]map[string]any)
	if !ok {
		t.Fatalf("expected must clause, got %v", clause)
	}
	if len(must) != 1 || must[0]["key"] != "airline" {
		t.Fatalf("unexpected conditions %v", must)
	}
	if _, hasShould := clause["should"]; hasShould {
		t.Fatalf("single condition must not use should")
	}
}

func TestCompileFilterMultipleConditionsUseShould(t *testing.T) {
	clause := compileFilter(domain.Filters{
		"airline":    "Emirates",
		"to_country": "UAE",
	})
	should, ok := clause["should"].([]map[string]any)
	if !ok {
		t.Fatalf("expected should clause, got %v", clause)
	}
	if len(should) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(should))
	}
	// Fixed field order keeps request bodies deterministic.
	if should[0]["key"] != "airline" || should[1]["key"] != "to_country" {
		t.Fatalf("unexpected condition order %v", should)
	}
}

func TestCompileFilterMapsPriceBoundsToRanges(t *testing.T) {
	clause := compileFilter(domain.Filters{
		"max_price": float64(2000),
		"min_price": float64(500),
	})
	should := clause["should"].([]map[string]any)
	if len(should) != 2 {
		t.Fatalf("expected 2 range conditions, got %v", should)
	}

	for _, cond := range should {
		if cond["key"] != "price_usd" {
			t.Fatalf("price conditions must target price_usd, got %v", cond)
		}
	}
	maxRange := should[0]["range"].(map[string]any)
	if maxRange["lte"] != float64(2000) {
		t.Fatalf("expected lte 2000, got %v", maxRange)
	}
	minRange := should[1]["range"].(map[string]any)
	if minRange["gte"] != float64(500) {
		t.Fatalf("expected gte 500, got %v", minRange)
	}
}

func TestCompileFilterSkipsNilValues(t *testing.T) {
	clause := compileFilter(domain.Filters{
		"airline":      "Emirates",
		"meal_service": nil,
	})
	must, ok := clause["must"].([]map[string]any)
	if !ok || len(must) != 1 {
		t.Fatalf("nil values must be skipped, got %v", clause)
	}
}
