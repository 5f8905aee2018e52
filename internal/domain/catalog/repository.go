package catalog

import (
	"context"

	"github.com/mrtoldo/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence.
// Every finder excludes soft deleted rows.
type CategoryRepository interface {
	// FindByID finds a live category by its ID
	FindByID(ctx context.Context, id int64) (*Category, error)

	// FindAll returns every live category ordered by name
	FindAll(ctx context.Context) ([]Category, error)

	// FindFiltered matches name or description against filter.Search
	FindFiltered(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// SoftDelete sets deleted_at on the category
	SoftDelete(ctx context.Context, id int64) error
}

// ProductRepository defines the interface for product persistence.
// Every finder excludes soft deleted rows.
type ProductRepository interface {
	// FindByID finds a live product by its ID, with its category
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll returns every live product ordered by name
	FindAll(ctx context.Context) ([]Product, error)

	// FindFiltered matches name, description, brand or category name against filter.Search,
	// or the price when the search term is numeric
	FindFiltered(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SoftDelete sets deleted_at on the product
	SoftDelete(ctx context.Context, id int64) error

	// ExistingIDs returns the subset of ids that reference live products
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
