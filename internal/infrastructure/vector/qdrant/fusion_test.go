package qdrant

import (
	"testing"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

func TestFuseRRFPrefersDocumentsInBothLists(t *testing.T) {
	dense := []domain.Document{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	sparse := []domain.Document{{ID: "c"}, {ID: "d"}}

	out := fuseRRF(dense, sparse, 10)
	if len(out) != 4 {
		t.Fatalf("expected 4 fused documents, got %d", len(out))
	}
	// c appears in both lists and must outrank a, which leads only dense.
	if out[0].ID != "c" {
		t.Fatalf("expected c first, got %s", out[0].ID)
	}
}

func TestFuseRRFHonorsLimit(t *testing.T) {
	dense := []domain.Document{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out := fuseRRF(dense, nil, 2)
	if len(out) != 2 {
		t.Fatalf("expected limit 2, got %d", len(out))
	}
}

func TestFuseRRFBreaksTiesByID(t *testing.T) {
	dense := []domain.Document{{ID: "b"}}
	sparse := []domain.Document{{ID: "a"}}
	out := fuseRRF(dense, sparse, 10)
	if out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("expected deterministic tie-break, got %s then %s", out[0].ID, out[1].ID)
	}
}
