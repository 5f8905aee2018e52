package persistence

import (
	"context"

	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var categorySearch = textSearch{Text: []string{"categories.name", "categories.description"}}

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a live category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id int64) (*catalog.Category, error) {
	return first[models.CategoryModel, catalog.Category](r.db.WithContext(ctx), "id = ?", id)
}

// FindAll returns every live category ordered by name
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(categoryModels), nil
}

// FindFiltered finds categories matching the filter, paginated
func (r *GormCategoryRepository) FindFiltered(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	err := r.db.WithContext(ctx).
		Model(&models.CategoryModel{}).
		Scopes(categorySearch.scope(filter.Search), paginate(filter)).
		Order(orderClause(filter, CategorySortFields, "categories.name", "ASC")).
		Find(&categoryModels).Error
	if err != nil {
		return nil, err
	}
	return categoriesToDomain(categoryModels), nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CategoryModel{}).
		Scopes(categorySearch.scope(filter.Search)).
		Count(&count).Error
	return count, err
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	var model models.CategoryModel
	model.FromDomain(category)
	if err := saveModel(r.db.WithContext(ctx), &model, category.IsNew()); err != nil {
		return err
	}
	category.ID = model.ID
	return nil
}

// SoftDelete sets deleted_at on the category
func (r *GormCategoryRepository) SoftDelete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func categoriesToDomain(ms []models.CategoryModel) []catalog.Category {
	out := make([]catalog.Category, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

// saveModel inserts new rows and updates existing live rows, returning ErrNotFound
// when an update matches nothing
func saveModel(db *gorm.DB, model any, isNew bool) error {
	if isNew {
		return translateWriteError(db.Omit(clause.Associations).Create(model).Error)
	}
	result := db.Select("*").Omit(clause.Associations, "created_at", "deleted_at").Updates(model)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
