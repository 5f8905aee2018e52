package partner

import (
	"context"

	"github.com/mrtoldo/backend/internal/domain/shared"
)

// CustomerOption is the projection used by quotation form selects
type CustomerOption struct {
	ID       int64
	Name     string
	Lastname string
	Email    string
	Phone    int64
	Company  string
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// FindOptions returns every customer ordered by name
	FindOptions(ctx context.Context) ([]CustomerOption, error)

	// FindFiltered matches name, lastname, email, company or rfc against filter.Search,
	// or the phone when the search term is numeric
	FindFiltered(ctx context.Context, filter shared.Filter) ([]CustomerSummary, error)

	Count(ctx context.Context, filter shared.Filter) (int64, error)

	Save(ctx context.Context, customer *Customer) error

	// Delete removes the customer; fails with INVALID_STATE when quotations reference it
	Delete(ctx context.Context, id int64) error

	Exists(ctx context.Context, id int64) (bool, error)
}

// BillingDetailsRepository defines the interface for billing details persistence.
// Every finder excludes soft deleted rows.
type BillingDetailsRepository interface {
	// FindByID finds live billing details with their address
	FindByID(ctx context.Context, id int64) (*BillingDetails, error)

	// FindAll returns every live billing details ordered by company
	FindAll(ctx context.Context) ([]BillingDetails, error)

	// FindFiltered matches name, lastname, company, rfc, clabe, check account or email against filter.Search
	FindFiltered(ctx context.Context, filter shared.Filter) ([]BillingDetailsSummary, error)

	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save writes the address and the billing details in one transaction
	Save(ctx context.Context, billing *BillingDetails) error

	// SoftDelete hides the billing details and, when no live billing details
	// reference it anymore, its address, in one transaction
	SoftDelete(ctx context.Context, id int64) error

	Exists(ctx context.Context, id int64) (bool, error)
}
