package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetStatementsDropBeforeCreate(t *testing.T) {
	lastDrop, firstCreate := -1, -1
	for i, stmt := range resetStatements {
		if strings.HasPrefix(stmt, "DROP TABLE") {
			lastDrop = i
		}
		if firstCreate == -1 && strings.HasPrefix(stmt, "CREATE") {
			firstCreate = i
		}
	}

	require.NotEqual(t, -1, lastDrop)
	require.NotEqual(t, -1, firstCreate)
	assert.Less(t, lastDrop, firstCreate, "all drops must precede the first create")
}

func TestResetStatementsDropDependentsFirst(t *testing.T) {
	dropIndex := func(table string) int {
		for i, stmt := range resetStatements {
			if stmt == "DROP TABLE IF EXISTS "+table {
				return i
			}
		}
		t.Fatalf("no drop statement for %s", table)
		return -1
	}

	assert.Less(t, dropIndex(TableProductTag), dropIndex(TableProduct))
	assert.Less(t, dropIndex(TableProductTag), dropIndex(TableTag))
	assert.Less(t, dropIndex(TableProduct), dropIndex(TableCategory))
}

func TestResetStatementsDeclareConstraints(t *testing.T) {
	all := strings.Join(resetStatements, "\n")

	// Referential constraints live in the schema, not in generator code.
	assert.Contains(t, all, "category_id INT NOT NULL REFERENCES category (id)")
	assert.Contains(t, all, "tag_id     INT NOT NULL REFERENCES tag (id)")
	assert.Contains(t, all, "product_id INT NOT NULL REFERENCES product (id)")
	assert.Contains(t, all, "PRIMARY KEY (tag_id, product_id)")
	assert.Contains(t, all, "CHECK (hits >= 0)")
	assert.Contains(t, all, "CREATE INDEX product_category_hits_idx ON product (category_id, hits DESC)")
}

func TestResetStatementsCoverEveryTable(t *testing.T) {
	all := strings.Join(resetStatements, "\n")

	for _, table := range []string{TableCategory, TableTag, TableProduct, TableProductTag} {
		assert.Contains(t, all, "DROP TABLE IF EXISTS "+table)
		assert.Contains(t, all, "CREATE TABLE "+table+" (")
	}

	// The run ledger must survive resets.
	assert.NotContains(t, all, "dataset_runs")
}
