package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kavaklabs/travel-assistant/internal/core/domain"
)

// IngestionJobRepository persists ingestion job state so the API can
// report progress while the worker runs the pipeline.
type IngestionJobRepository struct {
	db *sql.DB
}

func NewIngestionJobRepository(db *sql.DB) *IngestionJobRepository {
	return &IngestionJobRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *IngestionJobRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026031701)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS ingestion_jobs (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	file_type TEXT NOT NULL,
	collection_name TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT,
	document_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ingestion_jobs_status ON ingestion_jobs(status);
CREATE INDEX IF NOT EXISTS idx_ingestion_jobs_created_at ON ingestion_jobs(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *IngestionJobRepository) Create(ctx context.Context, job *domain.IngestionJob) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO ingestion_jobs (
	id, filename, file_type, collection_name, status, error_message, document_count, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`,
		job.ID, job.Filename, string(job.FileType), job.Collection, string(job.Status),
		job.Error, job.DocumentCount, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ingestion job: %w", err)
	}
	return nil
}

func (r *IngestionJobRepository) GetByID(ctx context.Context, id string) (*domain.IngestionJob, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, file_type, collection_name, status, error_message, document_count, created_at, updated_at
FROM ingestion_jobs
WHERE id = $1
`, id)

	var job domain.IngestionJob
	var fileType, status string

	err := row.Scan(
		&job.ID, &job.Filename, &fileType, &job.Collection, &status,
		&job.Error, &job.DocumentCount, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrJobNotFound, "get ingestion job", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan ingestion job: %w", err)
	}

	job.FileType = domain.FileType(fileType)
	job.Status = domain.IngestionStatus(status)
	return &job, nil
}

func (r *IngestionJobRepository) UpdateStatus(ctx context.Context, id string, status domain.IngestionStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE ingestion_jobs
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update ingestion job status: %w", err)
	}
	return requireRowAffected(res, "update ingestion job status", id)
}

func (r *IngestionJobRepository) SetDocumentCount(ctx context.Context, id string, count int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE ingestion_jobs
SET document_count = $2, updated_at = $3
WHERE id = $1
`, id, count, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set ingestion document count: %w", err)
	}
	return requireRowAffected(res, "set ingestion document count", id)
}

func requireRowAffected(res sql.Result, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrJobNotFound, operation, fmt.Errorf("id %s", id))
	}
	return nil
}
