package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Counts holds the cardinality of each entity container.
type Counts struct {
	Categories int64 `json:"categories"`
	Tags       int64 `json:"tags"`
	Products   int64 `json:"products"`
	Links      int64 `json:"links"`
}

// CountRows returns the current cardinalities of the four entity tables.
func CountRows(ctx context.Context, pool *pgxpool.Pool) (*Counts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM category),
			(SELECT COUNT(*) FROM tag),
			(SELECT COUNT(*) FROM product),
			(SELECT COUNT(*) FROM product_tag)
	`

	var c Counts
	err := pool.QueryRow(ctx, query).Scan(&c.Categories, &c.Tags, &c.Products, &c.Links)
	if err != nil {
		return nil, fmt.Errorf("failed to count dataset rows: %w", err)
	}

	return &c, nil
}

// IsUndefinedTable reports whether err is PostgreSQL's undefined_table,
// which for this tool means the dataset has never been seeded.
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
