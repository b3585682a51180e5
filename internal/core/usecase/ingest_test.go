package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

type jobStoreFake struct {
	jobs       map[string]*domain.IngestionJob
	statuses   []domain.IngestionStatus
	lastErrMsg string
	docCount   int
	createErr  error
}

func newJobStoreFake() *jobStoreFake {
	return &jobStoreFake{jobs: map[string]*domain.IngestionJob{}}
}

func (f *jobStoreFake) Create(_ context.Context, job *domain.IngestionJob) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.jobs[job.ID] = job
	return nil
}

func (f *jobStoreFake) GetByID(_ context.Context, id string) (*domain.IngestionJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrJobNotFound, "get job", fmt.Errorf("id %s", id))
	}
	return job, nil
}

func (f *jobStoreFake) UpdateStatus(_ context.Context, id string, status domain.IngestionStatus, errMessage string) error {
	f.statuses = append(f.statuses, status)
	f.lastErrMsg = errMessage
	if job, ok := f.jobs[id]; ok {
		job.Status = status
	}
	return nil
}

func (f *jobStoreFake) SetDocumentCount(_ context.Context, _ string, count int) error {
	f.docCount = count
	return nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishIngestionJob(_ context.Context, jobID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, jobID)
	return nil
}

func (f *queueFake) SubscribeIngestionJobs(context.Context, func(context.Context, string) error) error {
	return nil
}

type extractorFake struct {
	docs []domain.Document
	err  error
}

func (f *extractorFake) Extract(context.Context, string, domain.FileType) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func ingestFixture(t *testing.T, store *jobStoreFake, queue *queueFake, extractor *extractorFake, vector *vectorStoreFake) (*IngestionUseCase, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "flights.json"), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewIngestionUseCase(store, queue, extractor, &embedderFake{}, vector, root, 2), root
}

func TestSubmitCreatesAndQueuesJob(t *testing.T) {
	store := newJobStoreFake()
	queue := &queueFake{}
	uc, _ := ingestFixture(t, store, queue, &extractorFake{}, &vectorStoreFake{})

	job, err := uc.Submit(context.Background(), "flights.json", domain.FileTypeJSON, "travel")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if job.Status != domain.IngestionPending {
		t.Fatalf("expected pending job, got %s", job.Status)
	}
	if len(queue.published) != 1 || queue.published[0] != job.ID {
		t.Fatalf("expected job %s published, got %v", job.ID, queue.published)
	}
	if _, ok := store.jobs[job.ID]; !ok {
		t.Fatalf("job was not persisted")
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	uc, _ := ingestFixture(t, newJobStoreFake(), &queueFake{}, &extractorFake{}, &vectorStoreFake{})

	cases := []struct {
		name       string
		filename   string
		fileType   domain.FileType
		collection string
	}{
		{"empty filename", "", domain.FileTypeJSON, "travel"},
		{"empty collection", "flights.json", domain.FileTypeJSON, ""},
		{"unknown file type", "flights.json", domain.FileType("docx"), "travel"},
		{"path escape", "../../etc/passwd", domain.FileTypeJSON, "travel"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Submit(context.Background(), tc.filename, tc.fileType, tc.collection)
			if !domain.IsKind(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestProcessByIDMarksJobReady(t *testing.T) {
	store := newJobStoreFake()
	extractor := &extractorFake{docs: docs("d1", "d2", "d3")}
	vector := &vectorStoreFake{}
	uc, _ := ingestFixture(t, store, &queueFake{}, extractor, vector)

	job, err := uc.Submit(context.Background(), "flights.json", domain.FileTypeJSON, "travel")
	if err != nil {
		t.Fatal(err)
	}
	if err := uc.ProcessByID(context.Background(), job.ID); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}

	want := []domain.IngestionStatus{domain.IngestionProcessing, domain.IngestionReady}
	if len(store.statuses) != len(want) {
		t.Fatalf("status transitions = %v, want %v", store.statuses, want)
	}
	for i := range want {
		if store.statuses[i] != want[i] {
			t.Fatalf("status transitions = %v, want %v", store.statuses, want)
		}
	}
	if store.docCount != 3 {
		t.Fatalf("expected document count 3, got %d", store.docCount)
	}
}

func TestProcessByIDMarksJobFailedOnExtractionError(t *testing.T) {
	store := newJobStoreFake()
	extractor := &extractorFake{err: errors.New("corrupt file")}
	uc, _ := ingestFixture(t, store, &queueFake{}, extractor, &vectorStoreFake{})

	job, err := uc.Submit(context.Background(), "flights.json", domain.FileTypeJSON, "travel")
	if err != nil {
		t.Fatal(err)
	}
	if err := uc.ProcessByID(context.Background(), job.ID); err == nil {
		t.Fatalf("expected processing error")
	}

	last := store.statuses[len(store.statuses)-1]
	if last != domain.IngestionFailed {
		t.Fatalf("expected failed status, got %s", last)
	}
	if store.lastErrMsg == "" {
		t.Fatalf("expected error message on the failed job")
	}
}
