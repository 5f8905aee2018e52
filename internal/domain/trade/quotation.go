package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuotationStatus represents the payment status of a quotation
type QuotationStatus string

const (
	QuotationStatusPending QuotationStatus = "pending"
	QuotationStatusPaid    QuotationStatus = "paid"
)

// IsValid checks if the status is a valid QuotationStatus
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusPending, QuotationStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of QuotationStatus
func (s QuotationStatus) String() string {
	return string(s)
}

// QuotationItem is a product line of a quotation. Price is copied at quote time
// so later product price changes never alter historical quotations.
type QuotationItem struct {
	QuotationID int64
	ProductID   int64
	Quantity    int
	Price       decimal.Decimal
}

// NewQuotationItem creates a validated line item
func NewQuotationItem(productID int64, quantity int, price decimal.Decimal) (QuotationItem, error) {
	if productID <= 0 {
		return QuotationItem{}, shared.InvalidInput("Product ID must be a number")
	}
	if quantity < 1 {
		return QuotationItem{}, shared.InvalidInput("Quantity must be at least 1")
	}
	if price.IsNegative() {
		return QuotationItem{}, shared.InvalidInput("Price must be positive")
	}
	return QuotationItem{
		ProductID: productID,
		Quantity:  quantity,
		Price:     shared.RoundMoney(price),
	}, nil
}

// Amount returns price x quantity
func (i QuotationItem) Amount() decimal.Decimal {
	return shared.LineTotal(i.Price, i.Quantity)
}

// Quotation is the aggregate root of a sales quote and its line items.
// Subtotal is always the rounded sum of the items and Total is Subtotal
// with 16% IVA applied when IVA is set.
type Quotation struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Date             time.Time
	CustomerID       int64
	BillingDetailsID int64
	IVA              bool
	Subtotal         decimal.Decimal
	Total            decimal.Decimal
	Notes            string
	Status           QuotationStatus
	Items            []QuotationItem
}

// QuotationInput carries the editable quotation fields
type QuotationInput struct {
	CustomerID       int64
	BillingDetailsID int64
	IVA              bool
	Notes            string
	Status           QuotationStatus
	Items            []QuotationItem
}

// NewQuotation creates a quotation dated now with computed totals
func NewQuotation(in QuotationInput) (*Quotation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	q := &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              time.Now(),
	}
	q.apply(in)
	return q, nil
}

// Update replaces the scalar fields and all line items, then recomputes totals
func (q *Quotation) Update(in QuotationInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	q.apply(in)
	q.Touch()
	q.IncrementVersion()
	return nil
}

// Duplicate returns a new, unsaved quotation with the same customer, billing details,
// IVA flag, notes and line items, dated now and pending
func (q *Quotation) Duplicate() *Quotation {
	items := make([]QuotationItem, len(q.Items))
	for i, item := range q.Items {
		items[i] = QuotationItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	dup := &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              time.Now(),
		CustomerID:        q.CustomerID,
		BillingDetailsID:  q.BillingDetailsID,
		IVA:               q.IVA,
		Notes:             q.Notes,
		Status:            QuotationStatusPending,
		Items:             items,
	}
	dup.recalculateTotals()
	return dup
}

// MarkPaid sets the status to paid
func (q *Quotation) MarkPaid() error {
	return q.SetStatus(QuotationStatusPaid)
}

// MarkPending sets the status to pending
func (q *Quotation) MarkPending() error {
	return q.SetStatus(QuotationStatusPending)
}

// SetStatus changes the payment status
func (q *Quotation) SetStatus(status QuotationStatus) error {
	if !status.IsValid() {
		return shared.InvalidInput("Please select a valid status.")
	}
	if q.Status == status {
		return nil
	}
	q.Status = status
	q.Touch()
	q.IncrementVersion()
	return nil
}

// IVAAmount returns Total - Subtotal
func (q *Quotation) IVAAmount() decimal.Decimal {
	return q.Total.Sub(q.Subtotal)
}

// ProductIDs returns the distinct product ids referenced by the items
func (q *Quotation) ProductIDs() []int64 {
	return distinctProductIDs(q.Items)
}

func (q *Quotation) apply(in QuotationInput) {
	q.CustomerID = in.CustomerID
	q.BillingDetailsID = in.BillingDetailsID
	q.IVA = in.IVA
	q.Notes = strings.TrimSpace(in.Notes)
	q.Status = in.Status
	q.Items = make([]QuotationItem, len(in.Items))
	for i, item := range in.Items {
		item.QuotationID = q.ID
		q.Items[i] = item
	}
	q.recalculateTotals()
}

func (q *Quotation) recalculateTotals() {
	q.Subtotal, q.Total = CalculateTotals(q.Items, q.IVA)
}

// CalculateTotals returns the rounded subtotal and total for the given items
func CalculateTotals(items []QuotationItem, iva bool) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}
	subtotal = shared.RoundMoney(subtotal)
	if iva {
		return subtotal, shared.WithIVA(subtotal)
	}
	return subtotal, subtotal
}

func (in QuotationInput) validate() error {
	if in.CustomerID <= 0 {
		return shared.InvalidInput("Please select a customer.")
	}
	if in.BillingDetailsID <= 0 {
		return shared.InvalidInput("Please select billing details.")
	}
	if !in.Status.IsValid() {
		return shared.InvalidInput("Please select a valid status.")
	}
	if len(in.Items) == 0 {
		return shared.InvalidInput("At least one product is required")
	}
	seen := make(map[int64]struct{}, len(in.Items))
	for _, item := range in.Items {
		if _, err := NewQuotationItem(item.ProductID, item.Quantity, item.Price); err != nil {
			return err
		}
		if _, dup := seen[item.ProductID]; dup {
			return shared.InvalidInput(fmt.Sprintf("Product %d appears more than once", item.ProductID))
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}

func distinctProductIDs(items []QuotationItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
