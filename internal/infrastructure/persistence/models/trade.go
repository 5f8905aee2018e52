package models

import (
	"time"

	"github.com/mrtoldo/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuotationModel is the persistence model for the Quotation aggregate.
type QuotationModel struct {
	AggregateModel
	Date             time.Time             `gorm:"not null;index"`
	CustomerID       int64                 `gorm:"not null;index"`
	BillingDetailsID int64                 `gorm:"not null;index"`
	IVA              bool                  `gorm:"column:iva;not null;default:false"`
	Subtotal         decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	Total            decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	Notes            string                `gorm:"type:text"`
	Status           trade.QuotationStatus `gorm:"type:varchar(10);not null;default:'pending';index"`
	DeletedAt        gorm.DeletedAt        `gorm:"index"`

	Items          []QuotationItemModel `gorm:"foreignKey:QuotationID"`
	Customer       *CustomerModel       `gorm:"foreignKey:CustomerID"`
	BillingDetails *BillingDetailsModel `gorm:"foreignKey:BillingDetailsID"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// ToDomain converts the persistence model to a domain Quotation aggregate.
func (m *QuotationModel) ToDomain() *trade.Quotation {
	q := &trade.Quotation{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SoftDeletable:     toSoftDeletable(m.DeletedAt),
		Date:              m.Date,
		CustomerID:        m.CustomerID,
		BillingDetailsID:  m.BillingDetailsID,
		IVA:               m.IVA,
		Subtotal:          m.Subtotal,
		Total:             m.Total,
		Notes:             m.Notes,
		Status:            m.Status,
		Items:             make([]trade.QuotationItem, len(m.Items)),
	}
	for i := range m.Items {
		q.Items[i] = m.Items[i].ToDomain()
	}
	return q
}

// FromDomain populates the persistence model from a domain Quotation aggregate.
func (m *QuotationModel) FromDomain(q *trade.Quotation) {
	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	m.DeletedAt = fromSoftDeletable(q.SoftDeletable)
	m.Date = q.Date
	m.CustomerID = q.CustomerID
	m.BillingDetailsID = q.BillingDetailsID
	m.IVA = q.IVA
	m.Subtotal = q.Subtotal
	m.Total = q.Total
	m.Notes = q.Notes
	m.Status = q.Status
	m.Items = make([]QuotationItemModel, len(q.Items))
	for i, item := range q.Items {
		m.Items[i].FromDomain(item)
		m.Items[i].QuotationID = q.ID
	}
}

// ToDetail converts a fully preloaded model to the joined read model.
func (m *QuotationModel) ToDetail() *trade.QuotationDetail {
	d := &trade.QuotationDetail{
		Quotation: *m.ToDomain(),
		Lines:     make([]trade.QuotationLine, len(m.Items)),
	}
	if m.Customer != nil {
		d.Customer = *m.Customer.ToDomain()
	}
	if m.BillingDetails != nil {
		d.BillingDetails = m.BillingDetails.ToDomain()
	}
	for i := range m.Items {
		d.Lines[i].QuotationItem = m.Items[i].ToDomain()
		if m.Items[i].Product != nil {
			d.Lines[i].Product = *m.Items[i].Product.ToDomain()
		}
	}
	return d
}

// QuotationItemModel is a quotation line item. (quotation_id, product_id) is unique.
type QuotationItemModel struct {
	QuotationID int64           `gorm:"primaryKey;autoIncrement:false"`
	ProductID   int64           `gorm:"primaryKey;autoIncrement:false;index"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (QuotationItemModel) TableName() string {
	return "quotation_products"
}

// ToDomain converts the persistence model to a domain QuotationItem.
func (m *QuotationItemModel) ToDomain() trade.QuotationItem {
	return trade.QuotationItem{
		QuotationID: m.QuotationID,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		Price:       m.Price,
	}
}

// FromDomain populates the persistence model from a domain QuotationItem.
func (m *QuotationItemModel) FromDomain(i trade.QuotationItem) {
	m.QuotationID = i.QuotationID
	m.ProductID = i.ProductID
	m.Quantity = i.Quantity
	m.Price = i.Price
}
