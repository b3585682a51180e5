package extractor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
	"github.com/kavaklabs/travel-assistant/internal/infrastructure/chunking"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractJSONArrayProducesDocumentPerRecord(t *testing.T) {
	path := writeFixture(t, "flights.json", `[
		{"flight_id":"FL1000","airline":"Emirates","price_usd":1800,"refundable":true},
		{"flight_id":"FL1001","airline":"Lufthansa","price_usd":900,"refundable":false}
	]`)

	docs, err := New(nil).Extract(context.Background(), path, domain.FileTypeJSON)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Metadata["airline"] != "Emirates" {
		t.Fatalf("record fields must become metadata, got %v", docs[0].Metadata)
	}
	if docs[0].Metadata["item_index"] != 0 || docs[0].Metadata["total_items"] != 2 {
		t.Fatalf("missing positional metadata: %v", docs[0].Metadata)
	}
	if !strings.Contains(docs[0].Content, "FL1000") {
		t.Fatalf("content should carry the record, got %q", docs[0].Content)
	}
}

func TestExtractJSONObjectProducesSingleDocument(t *testing.T) {
	path := writeFixture(t, "policy.json", `{"policy":"refund","window_days":30}`)

	docs, err := New(nil).Extract(context.Background(), path, domain.FileTypeJSON)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Metadata["total_items"] != 1 {
		t.Fatalf("unexpected metadata %v", docs[0].Metadata)
	}
}

func TestExtractJSONRejectsScalarRoot(t *testing.T) {
	path := writeFixture(t, "bad.json", `"just a string"`)

	_, err := New(nil).Extract(context.Background(), path, domain.FileTypeJSON)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestExtractRejectsMismatchedExtension(t *testing.T) {
	path := writeFixture(t, "flights.txt", `[]`)

	_, err := New(nil).Extract(context.Background(), path, domain.FileTypeJSON)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for extension mismatch, got %v", err)
	}
}

func TestExtractMarkdownChunksWithMetadata(t *testing.T) {
	body := strings.Repeat("Visa rules for travellers. ", 60)
	path := writeFixture(t, "visa_rules.md", body)

	ex := New(chunking.NewSplitter(200, 40))
	docs, err := ex.Extract(context.Background(), path, domain.FileTypeMarkdown)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(docs) < 2 {
		t.Fatalf("expected chunked output, got %d documents", len(docs))
	}
	for i, doc := range docs {
		if doc.Metadata["chunk_index"] != i {
			t.Fatalf("chunk_index mismatch at %d: %v", i, doc.Metadata)
		}
		if doc.Metadata["total_chunks"] != len(docs) {
			t.Fatalf("total_chunks mismatch: %v", doc.Metadata)
		}
		if doc.Metadata["filename"] != "visa_rules.md" {
			t.Fatalf("filename missing: %v", doc.Metadata)
		}
		if doc.Metadata["document_type"] != "markdown" {
			t.Fatalf("document_type missing: %v", doc.Metadata)
		}
	}
}

func TestExtractXLSXUsesHeaderRowAsMetadataKeys(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	_ = workbook.SetSheetRow(sheet, "A1", &[]any{"flight_id", "airline", "price_usd", "refundable"})
	_ = workbook.SetSheetRow(sheet, "A2", &[]any{"FL1000", "Emirates", 1800, true})
	_ = workbook.SetSheetRow(sheet, "A3", &[]any{"FL1001", "Lufthansa", 900, false})

	path := filepath.Join(t.TempDir(), "flights.xlsx")
	if err := workbook.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	docs, err := New(nil).Extract(context.Background(), path, domain.FileTypeXLSX)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Metadata["airline"] != "Emirates" {
		t.Fatalf("expected airline metadata, got %v", docs[0].Metadata)
	}
	if docs[0].Metadata["price_usd"] != int64(1800) {
		t.Fatalf("expected numeric price coercion, got %T %v", docs[0].Metadata["price_usd"], docs[0].Metadata["price_usd"])
	}
	if docs[0].Metadata["refundable"] != true {
		t.Fatalf("expected boolean coercion, got %v", docs[0].Metadata["refundable"])
	}
	if !strings.Contains(docs[0].Content, "airline: Emirates") {
		t.Fatalf("content should render cells, got %q", docs[0].Content)
	}
}

func TestExtractXLSXRejectsHeaderOnlySheet(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	_ = workbook.SetSheetRow(sheet, "A1", &[]any{"flight_id"})

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := workbook.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	_, err := New(nil).Extract(context.Background(), path, domain.FileTypeXLSX)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
