package catalog

import (
	"strings"

	"github.com/mrtoldo/backend/internal/domain/shared"
)

// Category groups products on the dashboard and in product selects
type Category struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Name        string
	Description string
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validateCategory(name, description); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validateCategory(name, description); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.Touch()
	c.IncrementVersion()

	return nil
}

func validateCategory(name, description string) error {
	if name == "" {
		return shared.InvalidInput("Name is required.")
	}
	if len(name) > 100 {
		return shared.InvalidInput("Name cannot exceed 100 characters.")
	}
	if description == "" {
		return shared.InvalidInput("Description is required.")
	}
	return nil
}
