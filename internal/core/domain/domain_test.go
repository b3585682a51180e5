package domain

import (
	"errors"
	"testing"
)

func TestParseQueryType(t *testing.T) {
	cases := []struct {
		label string
		want  QueryType
	}{
		{"flight_only", QueryFlightOnly},
		{"info_only", QueryInfoOnly},
		{"both", QueryBoth},
		{"", QueryBoth},
		{"flights", QueryBoth},
		{"FLIGHT_ONLY", QueryBoth},
	}
	for _, tc := range cases {
		if got := ParseQueryType(tc.label); got != tc.want {
			t.Fatalf("ParseQueryType(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestWrapErrorKeepsKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ErrTemporary, "publish job", cause)

	if !IsKind(err, ErrTemporary) {
		t.Fatalf("expected temporary kind in %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause preserved in %v", err)
	}
	if IsKind(err, ErrJobNotFound) {
		t.Fatalf("unexpected not-found kind in %v", err)
	}
}

func TestWrapErrorNil(t *testing.T) {
	if err := WrapError(ErrInvalidInput, "validate", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestFileTypeValid(t *testing.T) {
	for _, ft := range []FileType{FileTypeJSON, FileTypeMarkdown, FileTypePDF, FileTypeXLSX} {
		if !ft.Valid() {
			t.Fatalf("expected %q to be valid", ft)
		}
	}
	for _, ft := range []FileType{"", "txt", "csv", "JSON"} {
		if FileType(ft).Valid() {
			t.Fatalf("expected %q to be invalid", ft)
		}
	}
}
