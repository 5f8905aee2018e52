package catalog

import (
	"strings"

	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Quotations keep referencing soft deleted products.
type Product struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Quantity    int
	Brand       string
	CategoryID  int64

	// Category is populated by repositories that join it
	Category *Category
}

// ProductInput carries the editable product fields
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Quantity    int
	Brand       string
	CategoryID  int64
}

// NewProduct creates a new product
func NewProduct(in ProductInput) (*Product, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &Product{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	p.apply(in)
	return p, nil
}

// Update replaces the editable fields of the product
func (p *Product) Update(in ProductInput) error {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return err
	}

	p.apply(in)
	p.Touch()
	p.IncrementVersion()
	return nil
}

// CategoryName returns the joined category name, or ""
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

func (p *Product) apply(in ProductInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = shared.RoundMoney(in.Price)
	p.ImageURL = in.ImageURL
	p.Quantity = in.Quantity
	p.Brand = in.Brand
	p.CategoryID = in.CategoryID
	if p.Category != nil && p.Category.ID != in.CategoryID {
		p.Category = nil
	}
}

func (in ProductInput) trimmed() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Brand = strings.TrimSpace(in.Brand)
	return in
}

func (in ProductInput) validate() error {
	switch {
	case in.Name == "":
		return shared.InvalidInput("Name is required.")
	case len(in.Name) > 200:
		return shared.InvalidInput("Name cannot exceed 200 characters.")
	case in.Description == "":
		return shared.InvalidInput("Description is required.")
	case in.Price.IsNegative():
		return shared.InvalidInput("Price must be >= 0")
	case in.ImageURL == "":
		return shared.InvalidInput("Image URL is required.")
	case in.Quantity < 0:
		return shared.InvalidInput("Quantity must be >= 0")
	case in.Brand == "":
		return shared.InvalidInput("Brand is required.")
	case in.CategoryID <= 0:
		return shared.InvalidInput("Category is required.")
	}
	return nil
}
