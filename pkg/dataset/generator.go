package dataset

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// seedLockID is the advisory lock guarding the dataset against concurrent
// seeding runs.
const seedLockID = 874_002_113

// maxLinkBatch caps how many link pairs go into one multi-row INSERT. Each
// pair binds two parameters and the PostgreSQL protocol allows 65535 per
// statement.
const maxLinkBatch = 10_000

// ProgressFunc receives batch-level progress for a running stage. done and
// total count rows (or link attempts); StageReset reports 0/0.
type ProgressFunc func(stage Stage, done, total int)

// Generator runs the seeding pipeline: schema reset, then categories, tags,
// products and (optionally) product-tag links, strictly in that order. It is
// single-writer and sequential; a partial run leaves the database in a
// reset-but-incomplete state that the next run repairs by resetting again.
type Generator struct {
	pool     *pgxpool.Pool
	params   Params
	rng      *rand.Rand
	progress ProgressFunc
	lockID   int64
}

// NewGenerator validates the parameters and builds a generator. A zero
// Params.Seed derives the random source from the clock; any other value
// makes sampling reproducible.
func NewGenerator(pool *pgxpool.Pool, params Params) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		pool:   pool,
		params: params,
		rng:    rand.New(rand.NewSource(seed)),
		lockID: seedLockID,
	}, nil
}

// WithProgress sets a progress callback. The callback runs on the seeding
// goroutine and must not block for long.
func (g *Generator) WithProgress(fn ProgressFunc) *Generator {
	g.progress = fn
	return g
}

// WithLockID sets a custom advisory lock ID.
func (g *Generator) WithLockID(lockID int64) *Generator {
	g.lockID = lockID
	return g
}

// Params returns the parameters the generator was built with.
func (g *Generator) Params() Params {
	return g.params
}

// Run executes the full pipeline and returns the ledger record for the run.
// On failure the record carries the stage reached and the error text; the
// returned error wraps the same cause as a StageError.
func (g *Generator) Run(ctx context.Context) (*RunRecord, error) {
	// The advisory lock must live on one session for its whole scope, so it
	// is taken on a pinned connection rather than through the pool.
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", g.lockID); err != nil {
		return nil, fmt.Errorf("failed to acquire seed lock: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", g.lockID)
	}()

	if err := EnsureRunLedger(ctx, g.pool); err != nil {
		return nil, err
	}

	run, err := beginRun(ctx, g.pool, g.params)
	if err != nil {
		return nil, err
	}

	if err := g.runStages(ctx, run); err != nil {
		stageErr := &StageError{Stage: run.Stage, Err: classifyError(err)}
		_ = run.fail(ctx, g.pool, stageErr)
		return run, stageErr
	}

	if err := run.complete(ctx, g.pool); err != nil {
		return run, err
	}

	return run, nil
}

func (g *Generator) runStages(ctx context.Context, run *RunRecord) error {
	g.report(StageReset, 0, 0)
	if err := Reset(ctx, g.pool); err != nil {
		return err
	}

	if err := run.advance(ctx, g.pool, StageCategories); err != nil {
		return err
	}
	if err := g.copyRows(ctx, StageCategories, TableCategory, categoryColumns,
		g.params.Categories, categoryRow); err != nil {
		return err
	}

	if err := run.advance(ctx, g.pool, StageTags); err != nil {
		return err
	}
	if err := g.copyRows(ctx, StageTags, TableTag, tagColumns,
		g.params.Tags, tagRow); err != nil {
		return err
	}

	if err := run.advance(ctx, g.pool, StageProducts); err != nil {
		return err
	}
	categories := g.params.Categories
	if err := g.copyRows(ctx, StageProducts, TableProduct, productColumns,
		g.params.Products, func(i int) []any {
			return productRow(i, categories, g.rng)
		}); err != nil {
		return err
	}

	if !g.params.WithLinks {
		return nil
	}

	if err := run.advance(ctx, g.pool, StageLinks); err != nil {
		return err
	}
	return g.generateLinks(ctx)
}

// copyRows streams rows into a table with COPY, one round trip per batch.
// Rows are never materialized beyond the current batch.
func (g *Generator) copyRows(ctx context.Context, stage Stage, table string,
	columns []string, total int, row func(i int) []any) error {

	done := 0
	g.report(stage, done, total)

	return forEachBatch(total, g.params.BatchSize, func(start, count int) error {
		src := pgx.CopyFromSlice(count, func(i int) ([]any, error) {
			return row(start + i), nil
		})

		if _, err := g.pool.CopyFrom(ctx, pgx.Identifier{table}, columns, src); err != nil {
			return fmt.Errorf("copy into %s (rows %d..%d): %w", table, start, start+count-1, err)
		}

		done += count
		g.report(stage, done, total)
		return nil
	})
}

// generateLinks attempts Params.Links random (tag, product) pairs. Both
// references are sampled independently and uniformly over their committed
// identity ranges. Duplicate pairs are silently dropped by ON CONFLICT DO
// NOTHING, so the bridge ends up with at most Links rows.
func (g *Generator) generateLinks(ctx context.Context) error {
	batch := g.params.BatchSize
	if batch > maxLinkBatch {
		batch = maxLinkBatch
	}

	done := 0
	g.report(StageLinks, done, g.params.Links)

	return forEachBatch(g.params.Links, batch, func(start, count int) error {
		args := make([]any, 0, count*2)
		for i := 0; i < count; i++ {
			tagID, productID := linkPair(g.params.Tags, g.params.Products, g.rng)
			args = append(args, tagID, productID)
		}

		if _, err := g.pool.Exec(ctx, linkInsertSQL(count), args...); err != nil {
			return fmt.Errorf("insert into %s (attempts %d..%d): %w", TableProductTag, start, start+count-1, err)
		}

		done += count
		g.report(StageLinks, done, g.params.Links)
		return nil
	})
}

// linkInsertSQL builds a multi-row insert for n link pairs. Uniqueness
// conflicts on the composite key are expected and absorbed; anything else
// (a dangling reference) still aborts the statement.
func linkInsertSQL(n int) string {
	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(TableProductTag)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(linkColumns, ", "))
	sql.WriteString(") VALUES ")

	for i := 0; i < n; i++ {
		if i > 0 {
			sql.WriteString(", ")
		}
		fmt.Fprintf(&sql, "($%d, $%d)", i*2+1, i*2+2)
	}

	sql.WriteString(" ON CONFLICT DO NOTHING")
	return sql.String()
}

func (g *Generator) report(stage Stage, done, total int) {
	if g.progress != nil {
		g.progress(stage, done, total)
	}
}
