package catalog

import (
	"time"

	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ListFilter holds the query parameters of a dashboard listing
type ListFilter struct {
	Search    string `form:"query"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryOption is a category entry of a form select
type CategoryOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url" binding:"required,max=500"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	Brand       string          `json:"brand" binding:"required,max=100"`
	CategoryID  int64           `json:"category_id" binding:"required,gt=0"`
}

// UpdateProductRequest represents a request to update a product.
// Every field is replaced.
type UpdateProductRequest CreateProductRequest

func (r CreateProductRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Quantity:    r.Quantity,
		Brand:       r.Brand,
		CategoryID:  r.CategoryID,
	}
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url"`
	Quantity     int             `json:"quantity"`
	Brand        string          `json:"brand"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductOption is a product entry of the quotation form select
type ProductOption struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Brand string          `json:"brand"`
	Price decimal.Decimal `json:"price"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		Quantity:     p.Quantity,
		Brand:        p.Brand,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ImageUploadRequest asks for a presigned URL to upload a product image
type ImageUploadRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// ImageUploadResponse carries the presigned upload URL and the URL to store as image_url
type ImageUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	PublicURL  string    `json:"public_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}
