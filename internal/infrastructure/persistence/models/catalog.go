package models

import (
	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	AggregateModel
	Name        string         `gorm:"type:varchar(100);not null"`
	Description string         `gorm:"type:text;not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SoftDeletable:     toSoftDeletable(m.DeletedAt),
		Name:              m.Name,
		Description:       m.Description,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.DeletedAt = fromSoftDeletable(c.SoftDeletable)
	m.Name = c.Name
	m.Description = c.Description
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ImageURL    string          `gorm:"column:image_url;type:text;not null"`
	Quantity    int             `gorm:"not null;default:0"`
	Brand       string          `gorm:"type:varchar(100);not null"`
	CategoryID  int64           `gorm:"not null;index"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SoftDeletable:     toSoftDeletable(m.DeletedAt),
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		ImageURL:          m.ImageURL,
		Quantity:          m.Quantity,
		Brand:             m.Brand,
		CategoryID:        m.CategoryID,
	}
	if m.Category != nil {
		p.Category = m.Category.ToDomain()
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
// The category association is never written through the product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.DeletedAt = fromSoftDeletable(p.SoftDeletable)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.ImageURL = p.ImageURL
	m.Quantity = p.Quantity
	m.Brand = p.Brand
	m.CategoryID = p.CategoryID
}
