package dataset

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRow(t *testing.T) {
	assert.Equal(t, []any{1, "Category 1"}, categoryRow(1))
	assert.Equal(t, []any{42, "Category 42"}, categoryRow(42))
}

func TestTagRow(t *testing.T) {
	assert.Equal(t, []any{7, "Tag 7"}, tagRow(7))
}

func TestProductRowDomains(t *testing.T) {
	const categories = 13
	rng := rand.New(rand.NewSource(1))

	for i := 1; i <= 5000; i++ {
		row := productRow(i, categories, rng)
		require.Len(t, row, len(productColumns))

		assert.Equal(t, i, row[0])
		assert.Equal(t, "Product "+strconv.Itoa(i), row[1])
		assert.Equal(t, "Description for Product "+strconv.Itoa(i), row[2])

		categoryID := row[3].(int)
		assert.GreaterOrEqual(t, categoryID, 1)
		assert.LessOrEqual(t, categoryID, categories)

		hits := row[4].(int64)
		assert.GreaterOrEqual(t, hits, int64(0))
		assert.Less(t, hits, int64(hitsRange))
	}
}

func TestProductRowCoversCategoryRange(t *testing.T) {
	const categories = 5
	rng := rand.New(rand.NewSource(2))

	seen := make(map[int]bool)
	for i := 1; i <= 1000; i++ {
		seen[productRow(i, categories, rng)[3].(int)] = true
	}

	// Uniform sampling over 5 ids across 1000 draws hits every id.
	for id := 1; id <= categories; id++ {
		assert.True(t, seen[id], "category %d never sampled", id)
	}
}

func TestProductRowDeterministicWithSeed(t *testing.T) {
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))

	for i := 1; i <= 100; i++ {
		assert.Equal(t, productRow(i, 10, a), productRow(i, 10, b))
	}
}

func TestLinkPairDomains(t *testing.T) {
	const tags, products = 9, 17
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 5000; i++ {
		tagID, productID := linkPair(tags, products, rng)
		assert.GreaterOrEqual(t, tagID, 1)
		assert.LessOrEqual(t, tagID, tags)
		assert.GreaterOrEqual(t, productID, 1)
		assert.LessOrEqual(t, productID, products)
	}
}

func TestForEachBatch(t *testing.T) {
	tests := []struct {
		name        string
		total, size int
		wantBatches [][2]int // (start, count)
	}{
		{"empty", 0, 10, nil},
		{"single partial", 7, 10, [][2]int{{1, 7}}},
		{"exact multiple", 20, 10, [][2]int{{1, 10}, {11, 10}}},
		{"trailing remainder", 25, 10, [][2]int{{1, 10}, {11, 10}, {21, 5}}},
		{"size one", 3, 1, [][2]int{{1, 1}, {2, 1}, {3, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			err := forEachBatch(tt.total, tt.size, func(start, count int) error {
				got = append(got, [2]int{start, count})
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantBatches, got)

			sum := 0
			for _, b := range got {
				sum += b[1]
			}
			assert.Equal(t, tt.total, sum, "batches must cover every ordinal exactly once")
		})
	}
}

func TestForEachBatchStopsOnError(t *testing.T) {
	calls := 0
	err := forEachBatch(100, 10, func(start, count int) error {
		calls++
		if start > 1 {
			return assert.AnError
		}
		return nil
	})

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 2, calls)
}
