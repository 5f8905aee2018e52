package catalog

import (
	"context"
	"errors"

	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/mrtoldo/backend/internal/domain/shared"
)

// ErrCategoryNotFound is returned when the category does not exist or was deleted
var ErrCategoryNotFound = shared.NotFound("Category not found")

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a live category by ID
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves a page of categories matching the search term
func (s *CategoryService) List(ctx context.Context, filter ListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	categories, err := s.categoryRepo.FindFiltered(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCategoryResponses(categories), total, nil
}

// ListOptions returns every live category for form selects
func (s *CategoryService) ListOptions(ctx context.Context) ([]CategoryOption, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]CategoryOption, len(categories))
	for i, c := range categories {
		options[i] = CategoryOption{ID: c.ID, Name: c.Name}
	}
	return options, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, id int64, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, notFoundAs(err, ErrCategoryNotFound)
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete soft deletes a category. Products keep their category reference.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return notFoundAs(s.categoryRepo.SoftDelete(ctx, id), ErrCategoryNotFound)
}

func (s *CategoryService) find(ctx context.Context, id int64) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrCategoryNotFound)
	}
	return category, nil
}

// toDomainFilter converts listing query parameters to a normalized domain filter
func toDomainFilter(filter ListFilter) shared.Filter {
	return shared.Filter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.SortBy,
		OrderDir: filter.SortOrder,
	}.Normalize()
}

// notFoundAs replaces a generic not found error with a resource specific one
func notFoundAs(err error, target *shared.DomainError) error {
	if errors.Is(err, shared.ErrNotFound) {
		return target
	}
	return err
}
