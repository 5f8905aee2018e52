package catalog

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageUploadExpiry bounds the lifetime of presigned image upload URLs
const ImageUploadExpiry = 15 * time.Minute

// Errors returned by ProductService
var (
	ErrProductNotFound  = shared.NotFound("Product not found")
	ErrInvalidCategory  = shared.InvalidInput("Please select a valid category.")
	ErrStorageDisabled  = shared.NewDomainError("STORAGE_DISABLED", "Image uploads are not configured")
	ErrInvalidImageType = shared.InvalidInput("Only JPEG, PNG, WebP and GIF images are allowed")
	ErrImageNotUploaded = shared.InvalidInput("The product image has not been uploaded yet")
)

// allowedImageTypes maps accepted content types to the stored file extension
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStorage issues presigned uploads for product images and manages the stored objects
type ImageStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for storageKey and its expiry
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// PublicURL returns the URL the image is served from once uploaded
	PublicURL(storageKey string) string
	// KeyForURL maps a PublicURL back to its key. ok is false for foreign URLs.
	KeyForURL(u string) (key string, ok bool)
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	storage      ImageStorage
	logger       *zap.Logger
}

// NewProductService creates a new ProductService. storage may be nil when
// image uploads are disabled.
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	storage ImageStorage,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Create creates a new product in a live category
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.toInput())
	if err != nil {
		return nil, err
	}

	category, err := s.liveCategory(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.checkImage(ctx, product.ImageURL); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	product.Category = category

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a live product with its category
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves a page of products matching the search term
func (s *ProductService) List(ctx context.Context, filter ListFilter) ([]ProductResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	products, err := s.productRepo.FindFiltered(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// ListOptions returns every live product for the quotation form
func (s *ProductService) ListOptions(ctx context.Context) ([]ProductOption, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]ProductOption, len(products))
	for i, p := range products {
		options[i] = ProductOption{ID: p.ID, Name: p.Name, Brand: p.Brand, Price: p.Price}
	}
	return options, nil
}

// Update replaces the product fields
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	previousImage := product.ImageURL
	if err := product.Update(CreateProductRequest(req).toInput()); err != nil {
		return nil, err
	}
	if product.ImageURL != previousImage {
		if err := s.checkImage(ctx, product.ImageURL); err != nil {
			return nil, err
		}
	}

	if product.Category == nil {
		category, err := s.liveCategory(ctx, product.CategoryID)
		if err != nil {
			return nil, err
		}
		product.Category = category
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, notFoundAs(err, ErrProductNotFound)
	}
	if product.ImageURL != previousImage {
		s.removeImage(ctx, previousImage)
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete soft deletes a product. Existing quotations keep showing it.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return notFoundAs(s.productRepo.SoftDelete(ctx, id), ErrProductNotFound)
}

// RequestImageUpload returns a presigned URL the dashboard uploads the image to.
// Keys are products/{uuid}{ext} so uploads never overwrite each other.
func (s *ProductService) RequestImageUpload(ctx context.Context, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrInvalidImageType
	}
	if fileExt := strings.ToLower(path.Ext(req.Filename)); fileExt == ".jpeg" || fileExt == ext {
		ext = fileExt
	}

	key := "products/" + uuid.New().String() + ext
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, ImageUploadExpiry)
	if err != nil {
		s.logger.Error("Failed to presign product image upload",
			zap.String("storage_key", key),
			zap.Error(err))
		return nil, err
	}

	return &ImageUploadResponse{
		UploadURL:  uploadURL,
		PublicURL:  s.storage.PublicURL(key),
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// checkImage rejects a bucket URL whose object was never uploaded. URLs
// outside the bucket are accepted as is.
func (s *ProductService) checkImage(ctx context.Context, imageURL string) error {
	if s.storage == nil {
		return nil
	}
	key, ok := s.storage.KeyForURL(imageURL)
	if !ok {
		return nil
	}
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrImageNotUploaded
	}
	return nil
}

// removeImage deletes a replaced image. Failures only leave an orphan object.
func (s *ProductService) removeImage(ctx context.Context, imageURL string) {
	if s.storage == nil {
		return
	}
	key, ok := s.storage.KeyForURL(imageURL)
	if !ok {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete replaced product image",
			zap.String("storage_key", key),
			zap.Error(err))
	}
}

func (s *ProductService) find(ctx context.Context, id int64) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrProductNotFound)
	}
	return product, nil
}

func (s *ProductService) liveCategory(ctx context.Context, id int64) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrInvalidCategory
	}
	return category, err
}
