package dataset

// Default scale parameters. These match the reference dataset the downstream
// benchmarks were calibrated against.
const (
	DefaultCategories = 100
	DefaultTags       = 500
	DefaultProducts   = 1_000_000
	DefaultLinks      = 5_000_000
	DefaultBatchSize  = 10_000
)

// Params configures a seeding run.
type Params struct {
	Categories int // number of category rows (N)
	Tags       int // number of tag rows (M)
	Products   int // number of product rows (P)
	Links      int // number of product-tag link attempts (K)
	WithLinks  bool
	BatchSize  int   // rows per bulk-insert round trip
	Seed       int64 // 0 means derive from the clock
}

// DefaultParams returns the reference scale with link generation disabled.
func DefaultParams() Params {
	return Params{
		Categories: DefaultCategories,
		Tags:       DefaultTags,
		Products:   DefaultProducts,
		Links:      DefaultLinks,
		BatchSize:  DefaultBatchSize,
	}
}

// Validate checks that the parameters describe a satisfiable dataset.
// Referential sampling makes some combinations impossible: products sample a
// category id, links sample a tag id and a product id, so the sampled ranges
// must be non-empty. These are configuration errors, caught before any write.
func (p Params) Validate() error {
	switch {
	case p.Categories < 0:
		return &ParamError{Field: "categories", Message: "must not be negative"}
	case p.Tags < 0:
		return &ParamError{Field: "tags", Message: "must not be negative"}
	case p.Products < 0:
		return &ParamError{Field: "products", Message: "must not be negative"}
	case p.Links < 0:
		return &ParamError{Field: "links", Message: "must not be negative"}
	case p.BatchSize < 1:
		return &ParamError{Field: "batch-size", Message: "must be at least 1"}
	}

	if p.Products > 0 && p.Categories < 1 {
		return &ParamError{Field: "categories", Message: "products reference categories; need at least 1"}
	}
	if p.WithLinks && p.Links > 0 {
		if p.Tags < 1 {
			return &ParamError{Field: "tags", Message: "links reference tags; need at least 1"}
		}
		if p.Products < 1 {
			return &ParamError{Field: "products", Message: "links reference products; need at least 1"}
		}
	}

	return nil
}
