package qdrant

import "testing"

func TestEncodeSparseTextEmptyInput(t *testing.T) {
	v := encodeSparseText("")
	if len(v.Indices) != 0 || len(v.Values) != 0 {
		t.Fatalf("expected empty vector, got %v", v)
	}
}

func TestEncodeSparseTextIsDeterministic(t *testing.T) {
	a := encodeSparseText("Emirates flights to Dubai")
	b := encodeSparseText("Emirates flights to Dubai")
	if len(a.Indices) != len(b.Indices) {
		t.Fatalf("non-deterministic encoding")
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] || a.Values[i] != b.Values[i] {
			t.Fatalf("non-deterministic encoding at %d", i)
		}
	}
}

func TestEncodeSparseTextSaturatesRepeatedTerms(t *testing.T) {
	once := encodeSparseText("emirates")
	many := encodeSparseText("emirates emirates emirates emirates")
	if len(once.Values) != 1 || len(many.Values) != 1 {
		t.Fatalf("expected single term vectors")
	}
	if many.Values[0] <= once.Values[0] {
		t.Fatalf("repeated term should weigh more: %f vs %f", many.Values[0], once.Values[0])
	}
	if many.Values[0] >= sparseBM25K+1.0 {
		t.Fatalf("weight must saturate below k+1, got %f", many.Values[0])
	}
}

func TestTokenizeAlphaNumSplitsOnPunctuation(t *testing.T) {
	tokens := tokenizeAlphaNum("Boeing-787, WiFi!")
	want := []string{"boeing", "787", "wifi"}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("tokens = %v, want %v", tokens, want)
		}
	}
}
