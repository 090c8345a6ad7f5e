package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// resetStatements rebuild the entity tables from scratch. Dependents are
// dropped before their referents so the drops never trip a foreign key.
// Constraints are declared here, not checked by the generator: the storage
// layer rejects any row that would break referential integrity.
var resetStatements = []string{
	`DROP TABLE IF EXISTS product_tag`,
	`DROP TABLE IF EXISTS product`,
	`DROP TABLE IF EXISTS tag`,
	`DROP TABLE IF EXISTS category`,

	`CREATE TABLE category (
		id   INT PRIMARY KEY,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE tag (
		id   INT PRIMARY KEY,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE product (
		id          INT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		category_id INT NOT NULL REFERENCES category (id),
		hits        BIGINT NOT NULL CHECK (hits >= 0)
	)`,

	// Downstream benchmarks rank products by popularity within a category.
	`CREATE INDEX product_category_hits_idx ON product (category_id, hits DESC)`,

	`CREATE TABLE product_tag (
		tag_id     INT NOT NULL REFERENCES tag (id),
		product_id INT NOT NULL REFERENCES product (id),
		PRIMARY KEY (tag_id, product_id)
	)`,
}

// Reset drops and recreates the four entity tables in a single transaction.
// Destructive: any previously generated dataset is discarded, dependents
// included. Safe to invoke repeatedly; the run ledger is left untouched.
func Reset(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin schema reset: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, stmt := range resetStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema reset failed at statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schema reset: %w", err)
	}

	return nil
}
