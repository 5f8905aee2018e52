package trade

import (
	"time"

	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// QuotationDetail is the fully joined quotation used for PDF export.
// Soft deleted products and billing details are still loaded.
type QuotationDetail struct {
	Quotation
	Customer       partner.Customer
	BillingDetails *partner.BillingDetails
	Lines          []QuotationLine
}

// QuotationLine is a line item joined with its product
type QuotationLine struct {
	QuotationItem
	Product catalog.Product
}

// QuotationSummary is a row of the quotation listing
type QuotationSummary struct {
	ID               int64
	Date             time.Time
	CustomerID       int64
	CustomerName     string
	CustomerLastname string
	CustomerEmail    string
	CustomerCompany  string
	BillingDetailsID int64
	IVA              bool
	Subtotal         decimal.Decimal
	Total            decimal.Decimal
	Status           QuotationStatus
}

// MonthlyRevenue is the sum of quotation totals for one calendar month
type MonthlyRevenue struct {
	Month time.Time
	Total decimal.Decimal
}

// StatusTotals holds the sums of quotation totals per status
type StatusTotals struct {
	Paid    decimal.Decimal
	Pending decimal.Decimal
}
