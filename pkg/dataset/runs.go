package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRecord is one row of the run ledger. The ledger survives schema resets,
// so a partial run is always diagnosable by the last stage it reached.
type RunRecord struct {
	ID          uuid.UUID  `json:"id"`
	Categories  int        `json:"categories"`
	Tags        int        `json:"tags"`
	Products    int        `json:"products"`
	Links       int        `json:"links"`
	WithLinks   bool       `json:"with_links"`
	Stage       Stage      `json:"stage"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
}

// Completed reports whether the run finished every stage.
func (r *RunRecord) Completed() bool {
	return r.Stage == StageComplete && r.Error == nil
}

// EnsureRunLedger creates the dataset_runs table if it does not exist. The
// ledger is deliberately not part of the reset statements: history must
// outlive the datasets it describes.
func EnsureRunLedger(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS dataset_runs (
			id           UUID PRIMARY KEY,
			categories   INT NOT NULL,
			tags         INT NOT NULL,
			products     INT NOT NULL,
			links        INT NOT NULL,
			with_links   BOOLEAN NOT NULL,
			stage        TEXT NOT NULL,
			started_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ,
			error        TEXT
		)
	`

	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create dataset_runs table: %w", err)
	}

	return nil
}

// LastRun returns the most recently started run, or ErrNoRuns when the
// ledger is empty.
func LastRun(ctx context.Context, pool *pgxpool.Pool) (*RunRecord, error) {
	query := `
		SELECT id, categories, tags, products, links, with_links,
		       stage, started_at, completed_at, error
		FROM dataset_runs
		ORDER BY started_at DESC
		LIMIT 1
	`

	var r RunRecord
	err := pool.QueryRow(ctx, query).Scan(
		&r.ID, &r.Categories, &r.Tags, &r.Products, &r.Links, &r.WithLinks,
		&r.Stage, &r.StartedAt, &r.CompletedAt, &r.Error,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run ledger: %w", err)
	}

	return &r, nil
}

// LastCompletedRun returns the most recent run that finished every stage, or
// ErrNoRuns when there is none. Verification uses it to recover the expected
// scale parameters.
func LastCompletedRun(ctx context.Context, pool *pgxpool.Pool) (*RunRecord, error) {
	query := `
		SELECT id, categories, tags, products, links, with_links,
		       stage, started_at, completed_at, error
		FROM dataset_runs
		WHERE stage = $1 AND error IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`

	var r RunRecord
	err := pool.QueryRow(ctx, query, StageComplete).Scan(
		&r.ID, &r.Categories, &r.Tags, &r.Products, &r.Links, &r.WithLinks,
		&r.Stage, &r.StartedAt, &r.CompletedAt, &r.Error,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run ledger: %w", err)
	}

	return &r, nil
}

// beginRun inserts a ledger row for a starting run.
func beginRun(ctx context.Context, pool *pgxpool.Pool, p Params) (*RunRecord, error) {
	r := &RunRecord{
		ID:         uuid.New(),
		Categories: p.Categories,
		Tags:       p.Tags,
		Products:   p.Products,
		Links:      p.Links,
		WithLinks:  p.WithLinks,
		Stage:      StageReset,
		StartedAt:  time.Now().UTC(),
	}

	query := `
		INSERT INTO dataset_runs (id, categories, tags, products, links, with_links, stage, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := pool.Exec(ctx, query,
		r.ID, r.Categories, r.Tags, r.Products, r.Links, r.WithLinks, r.Stage, r.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	return r, nil
}

// advance moves the ledger row to the given stage.
func (r *RunRecord) advance(ctx context.Context, pool *pgxpool.Pool, stage Stage) error {
	r.Stage = stage
	_, err := pool.Exec(ctx, "UPDATE dataset_runs SET stage = $1 WHERE id = $2", stage, r.ID)
	if err != nil {
		return fmt.Errorf("failed to advance run to stage %s: %w", stage, err)
	}
	return nil
}

// complete marks the run finished.
func (r *RunRecord) complete(ctx context.Context, pool *pgxpool.Pool) error {
	now := time.Now().UTC()
	r.Stage = StageComplete
	r.CompletedAt = &now

	_, err := pool.Exec(ctx,
		"UPDATE dataset_runs SET stage = $1, completed_at = $2 WHERE id = $3",
		StageComplete, now, r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to record run completion: %w", err)
	}
	return nil
}

// fail records the error against the run, keeping the stage it died in.
func (r *RunRecord) fail(ctx context.Context, pool *pgxpool.Pool, cause error) error {
	now := time.Now().UTC()
	msg := cause.Error()
	r.CompletedAt = &now
	r.Error = &msg

	_, err := pool.Exec(ctx,
		"UPDATE dataset_runs SET completed_at = $1, error = $2 WHERE id = $3",
		now, msg, r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to record run failure: %w", err)
	}
	return nil
}
