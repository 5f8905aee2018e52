package persistence

import (
	"context"

	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var productSearch = textSearch{
	Text:     []string{"products.name", "products.description", "products.brand", "categories.name"},
	Decimals: []string{"products.price"},
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// withCategory preloads the category even when it has been soft deleted
func withCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("Category", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
}

func (r *GormProductRepository) joined(ctx context.Context, search string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Scopes(productSearch.scope(search))
}

// FindByID finds a live product by its ID, with its category
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	return first[models.ProductModel, catalog.Product](r.db.WithContext(ctx).Scopes(withCategory), "id = ?", id)
}

// FindAll returns every live product ordered by name
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).Scopes(withCategory).Order("name ASC").Find(&productModels).Error; err != nil {
		return nil, err
	}
	return productsToDomain(productModels), nil
}

// FindFiltered finds products matching the filter, paginated
func (r *GormProductRepository) FindFiltered(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	err := r.joined(ctx, filter.Search).
		Select("products.*").
		Scopes(withCategory, paginate(filter)).
		Order(orderClause(filter, ProductSortFields, "products.name", "ASC")).
		Find(&productModels).Error
	if err != nil {
		return nil, err
	}
	return productsToDomain(productModels), nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.joined(ctx, filter.Search).Count(&count).Error
	return count, err
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)
	if err := saveModel(r.db.WithContext(ctx), &model, product.IsNew()); err != nil {
		return err
	}
	product.ID = model.ID
	return nil
}

// SoftDelete sets deleted_at on the product
func (r *GormProductRepository) SoftDelete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistingIDs returns the subset of ids that reference live products
func (r *GormProductRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	var found []int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	return found, err
}

func productsToDomain(ms []models.ProductModel) []catalog.Product {
	out := make([]catalog.Product, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
