package trade

import (
	"context"
	"time"

	"github.com/mrtoldo/backend/internal/domain/shared"
)

// QuotationRepository defines the interface for quotation persistence.
// Writes that touch line items run in a single transaction.
type QuotationRepository interface {
	// FindByID finds a live quotation with its line items
	FindByID(ctx context.Context, id int64) (*Quotation, error)

	// FindDetail loads the quotation with customer, billing details, address and products
	FindDetail(ctx context.Context, id int64) (*QuotationDetail, error)

	// FindFiltered matches customer name, email or company against filter.Search,
	// the total when the search term is numeric, and the "status" filter; newest first
	FindFiltered(ctx context.Context, filter shared.Filter) ([]QuotationSummary, error)

	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Create inserts the quotation and its line items
	Create(ctx context.Context, quotation *Quotation) error

	// Update writes the quotation row and replaces every line item
	Update(ctx context.Context, quotation *Quotation) error

	// UpdateStatus writes only the status column
	UpdateStatus(ctx context.Context, id int64, status QuotationStatus) error

	// Duplicate copies the source quotation and its line items, returning the new quotation
	Duplicate(ctx context.Context, sourceID int64) (*Quotation, error)

	// Delete removes the line items and then the quotation
	Delete(ctx context.Context, id int64) error

	// CountAll counts live quotations
	CountAll(ctx context.Context) (int64, error)

	// SumTotalByStatus sums totals of live quotations per status
	SumTotalByStatus(ctx context.Context) (StatusTotals, error)

	// Latest returns the n most recent quotations
	Latest(ctx context.Context, n int) ([]QuotationSummary, error)

	// MonthlyRevenue returns one entry per month from since to now, oldest first
	MonthlyRevenue(ctx context.Context, since time.Time) ([]MonthlyRevenue, error)
}
