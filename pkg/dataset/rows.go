package dataset

import (
	"fmt"
	"math/rand"
)

// Column lists for bulk loading. Order must match the row builders below.
var (
	categoryColumns = []string{"id", "name"}
	tagColumns      = []string{"id", "name"}
	productColumns  = []string{"id", "name", "description", "category_id", "hits"}
	linkColumns     = []string{"tag_id", "product_id"}
)

// Popularity counters are sampled uniformly from [0, hitsRange).
const hitsRange = 1000

// categoryRow derives a category from its ordinal. Deterministic: identity i
// always yields the same row.
func categoryRow(i int) []any {
	return []any{i, fmt.Sprintf("Category %d", i)}
}

// tagRow derives a tag from its ordinal, same pattern as categoryRow.
func tagRow(i int) []any {
	return []any{i, fmt.Sprintf("Tag %d", i)}
}

// productRow derives a product from its ordinal. Name and description are
// deterministic; the category reference is uniform over [1, categories] and
// hits is uniform over [0, hitsRange).
func productRow(i int, categories int, rng *rand.Rand) []any {
	return []any{
		i,
		fmt.Sprintf("Product %d", i),
		fmt.Sprintf("Description for Product %d", i),
		rng.Intn(categories) + 1,
		rng.Int63n(hitsRange),
	}
}

// linkPair samples an independent uniform (tag, product) reference pair.
// Both sides are uniform draws over the committed identity ranges; duplicate
// pairs are expected and dropped at insert time.
func linkPair(tags, products int, rng *rand.Rand) (tagID, productID int) {
	return rng.Intn(tags) + 1, rng.Intn(products) + 1
}

// forEachBatch slices [1, total] into runs of at most size rows and invokes
// fn with the first ordinal and length of each run, in order.
func forEachBatch(total, size int, fn func(start, count int) error) error {
	for start := 1; start <= total; start += size {
		count := size
		if remaining := total - start + 1; remaining < count {
			count = remaining
		}
		if err := fn(start, count); err != nil {
			return err
		}
	}
	return nil
}
