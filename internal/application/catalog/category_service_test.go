package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("saves a valid category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*catalog.Category).ID = 4
			}).
			Return(nil)

		resp, err := svc.Create(ctx, CreateCategoryRequest{Name: " Herramientas ", Description: "Manuales"})
		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.Equal(t, "Herramientas", resp.Name)
		repo.AssertExpectations(t)
	})

	t.Run("rejects blank description without saving", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)

		_, err := svc.Create(ctx, CreateCategoryRequest{Name: "Herramientas", Description: "  "})
		require.Error(t, err)
		assert.Equal(t, "Description is required.", err.Error())
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo)

	repo.On("FindByID", ctx, int64(9)).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(ctx, 9)
	assert.Equal(t, ErrCategoryNotFound, err)
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo)

	expected := shared.Filter{Search: "herr", Page: 2, PageSize: shared.DefaultPageSize, Filters: map[string]any{}}
	repo.On("FindFiltered", ctx, expected).Return([]catalog.Category{
		{Name: "Herramientas", Description: "Manuales"},
	}, nil)
	repo.On("Count", ctx, expected).Return(int64(7), nil)

	items, total, err := svc.List(ctx, ListFilter{Search: " herr ", Page: 2})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(7), total)
	repo.AssertExpectations(t)
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo)

	existing, err := catalog.NewCategory("Viejo", "Desc")
	require.NoError(t, err)
	existing.ID = 3

	repo.On("FindByID", ctx, int64(3)).Return(existing, nil)
	repo.On("Save", ctx, existing).Return(nil)

	resp, err := svc.Update(ctx, 3, UpdateCategoryRequest{Name: "Nuevo", Description: "Otra"})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", resp.Name)
	assert.Equal(t, 2, existing.Version)
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("maps not found", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("SoftDelete", ctx, int64(5)).Return(shared.ErrNotFound)

		err := NewCategoryService(repo).Delete(ctx, 5)
		assert.Equal(t, ErrCategoryNotFound, err)
	})

	t.Run("passes database errors through", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		dbErr := errors.New("connection reset")
		repo.On("SoftDelete", ctx, int64(5)).Return(dbErr)

		err := NewCategoryService(repo).Delete(ctx, 5)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCategoryService_ListOptions(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	repo.On("FindAll", ctx).Return([]catalog.Category{
		{BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.BaseEntity{ID: 1}}, Name: "A"},
		{BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.BaseEntity{ID: 2}}, Name: "B"},
	}, nil)

	options, err := NewCategoryService(repo).ListOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CategoryOption{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, options)
}
