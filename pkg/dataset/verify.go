package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Report is the outcome of checking a generated dataset against the
// parameters it was supposedly generated with.
type Report struct {
	Categories int64    `json:"categories"`
	Tags       int64    `json:"tags"`
	Products   int64    `json:"products"`
	Links      int64    `json:"links"`
	Violations []string `json:"violations"`
}

// OK reports whether every invariant held.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

func (r *Report) violate(format string, args ...any) {
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}

// Verify re-checks the dataset invariants against a live database: exact
// cardinalities, dense contiguous identity ranges, reference domains, the
// popularity counter domain and bridge integrity. It only reads; a failed
// check lands in Report.Violations rather than an error. Errors are reserved
// for the storage layer itself.
func Verify(ctx context.Context, pool *pgxpool.Pool, expect Params) (*Report, error) {
	r := &Report{}

	if err := verifyDenseRange(ctx, pool, TableCategory, expect.Categories, &r.Categories, r); err != nil {
		return nil, err
	}
	if err := verifyDenseRange(ctx, pool, TableTag, expect.Tags, &r.Tags, r); err != nil {
		return nil, err
	}
	if err := verifyProducts(ctx, pool, expect, r); err != nil {
		return nil, err
	}
	if err := verifyLinks(ctx, pool, expect, r); err != nil {
		return nil, err
	}

	return r, nil
}

// verifyDenseRange checks that a table holds exactly want rows with ids
// forming the contiguous range [1, want]. Ids are unique by primary key, so
// count, min and max pin the range down completely.
func verifyDenseRange(ctx context.Context, pool *pgxpool.Pool, table string, want int, got *int64, r *Report) error {
	query := fmt.Sprintf(
		"SELECT COUNT(*), COALESCE(MIN(id), 0), COALESCE(MAX(id), 0) FROM %s", table)

	var count, minID, maxID int64
	if err := pool.QueryRow(ctx, query).Scan(&count, &minID, &maxID); err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	*got = count

	if count != int64(want) {
		r.violate("%s: expected %d rows, found %d", table, want, count)
	}
	if count > 0 && (minID != 1 || maxID != count) {
		r.violate("%s: ids span [%d, %d], expected dense [1, %d]", table, minID, maxID, count)
	}

	return nil
}

func verifyProducts(ctx context.Context, pool *pgxpool.Pool, expect Params, r *Report) error {
	if err := verifyDenseRange(ctx, pool, TableProduct, expect.Products, &r.Products, r); err != nil {
		return err
	}

	var badRefs int64
	err := pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM product WHERE category_id < 1 OR category_id > $1",
		expect.Categories,
	).Scan(&badRefs)
	if err != nil {
		return fmt.Errorf("failed to check product category references: %w", err)
	}
	if badRefs > 0 {
		r.violate("product: %d rows reference a category outside [1, %d]", badRefs, expect.Categories)
	}

	var badHits int64
	err = pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM product WHERE hits < 0 OR hits >= $1", hitsRange,
	).Scan(&badHits)
	if err != nil {
		return fmt.Errorf("failed to check product hits: %w", err)
	}
	if badHits > 0 {
		r.violate("product: %d rows have hits outside [0, %d]", badHits, hitsRange-1)
	}

	return nil
}

func verifyLinks(ctx context.Context, pool *pgxpool.Pool, expect Params, r *Report) error {
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM product_tag").Scan(&r.Links); err != nil {
		return fmt.Errorf("failed to count product_tag: %w", err)
	}

	if !expect.WithLinks {
		if r.Links != 0 {
			r.violate("product_tag: expected empty (links disabled), found %d rows", r.Links)
		}
		return nil
	}

	// Duplicate attempts are dropped, so the bridge can only shrink below
	// the attempt count, never exceed it.
	if r.Links > int64(expect.Links) {
		r.violate("product_tag: %d rows exceed the %d attempts", r.Links, expect.Links)
	}

	var orphans int64
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM product_tag pt
		LEFT JOIN tag t ON t.id = pt.tag_id
		LEFT JOIN product p ON p.id = pt.product_id
		WHERE t.id IS NULL OR p.id IS NULL
	`).Scan(&orphans)
	if err != nil {
		return fmt.Errorf("failed to check product_tag references: %w", err)
	}
	if orphans > 0 {
		r.violate("product_tag: %d rows reference a missing tag or product", orphans)
	}

	return nil
}
