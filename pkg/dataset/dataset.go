// Package dataset generates the synthetic relational dataset consumed by the
// query and dataflow benchmarks: categories, tags, products and the optional
// product-tag bridge, with referential integrity enforced by the schema.
package dataset

// Table names for the generated entity containers.
const (
	TableCategory   = "category"
	TableTag        = "tag"
	TableProduct    = "product"
	TableProductTag = "product_tag"
)

// Category is a product category. Identities form the dense range [1, N].
type Category struct {
	ID   int
	Name string
}

// Tag is a product tag. Identities form the dense range [1, M].
type Tag struct {
	ID   int
	Name string
}

// Product references an existing category and carries a popularity counter
// ("hits") sampled from [0, 999].
type Product struct {
	ID          int
	Name        string
	Description string
	CategoryID  int
	Hits        int64
}

// ProductTag links a product to a tag. The pair is the composite primary key.
type ProductTag struct {
	TagID     int
	ProductID int
}

// Stage identifies a step of the seeding pipeline. Stages always execute in
// the order listed here; later stages sample identity ranges committed by
// earlier ones.
type Stage string

const (
	// StageReset drops and recreates the entity tables.
	StageReset Stage = "reset"
	// StageCategories populates the category table.
	StageCategories Stage = "categories"
	// StageTags populates the tag table.
	StageTags Stage = "tags"
	// StageProducts populates the product table.
	StageProducts Stage = "products"
	// StageLinks populates the product_tag bridge.
	StageLinks Stage = "links"
	// StageComplete marks a finished run.
	StageComplete Stage = "complete"
)
