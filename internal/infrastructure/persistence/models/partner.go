package models

import (
	"github.com/mrtoldo/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(100);not null"`
	Lastname string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(200);not null"`
	Company  string `gorm:"type:varchar(200);not null"`
	RFC      string `gorm:"column:rfc;type:varchar(20);not null"`
	Phone    int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Lastname:          m.Lastname,
		Email:             m.Email,
		Company:           m.Company,
		RFC:               m.RFC,
		Phone:             m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Lastname = c.Lastname
	m.Email = c.Email
	m.Company = c.Company
	m.RFC = c.RFC
	m.Phone = c.Phone
}

// AddressModel is the persistence model for a billing address.
type AddressModel struct {
	BaseModel
	Street        string         `gorm:"type:varchar(200);not null"`
	OutsideNumber string         `gorm:"type:varchar(20);not null"`
	Colony        string         `gorm:"type:varchar(100);not null"`
	City          string         `gorm:"type:varchar(100);not null"`
	CP            string         `gorm:"column:cp;type:varchar(10);not null"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address.
func (m *AddressModel) ToDomain() partner.Address {
	return partner.Address{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: toSoftDeletable(m.DeletedAt),
		Street:        m.Street,
		OutsideNumber: m.OutsideNumber,
		Colony:        m.Colony,
		City:          m.City,
		CP:            m.CP,
	}
}

// FromDomain populates the persistence model from a domain Address.
func (m *AddressModel) FromDomain(a partner.Address) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.DeletedAt = fromSoftDeletable(a.SoftDeletable)
	m.Street = a.Street
	m.OutsideNumber = a.OutsideNumber
	m.Colony = a.Colony
	m.City = a.City
	m.CP = a.CP
}

// BillingDetailsModel is the persistence model for the BillingDetails domain entity.
type BillingDetailsModel struct {
	AggregateModel
	Name         string         `gorm:"type:varchar(100);not null"`
	Lastname     string         `gorm:"type:varchar(100);not null"`
	Company      string         `gorm:"type:varchar(200);not null"`
	RFC          string         `gorm:"column:rfc;type:varchar(20);not null"`
	Clabe        string         `gorm:"type:varchar(18);not null"`
	CheckAccount string         `gorm:"type:varchar(30);not null"`
	CardNumber   string         `gorm:"type:varchar(19)"`
	Phone        int64          `gorm:"not null"`
	Email        string         `gorm:"type:varchar(200);not null"`
	AddressID    int64          `gorm:"not null;index"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Address *AddressModel `gorm:"foreignKey:AddressID"`
}

// TableName returns the table name for GORM
func (BillingDetailsModel) TableName() string {
	return "billing_details"
}

// ToDomain converts the persistence model to a domain BillingDetails entity.
func (m *BillingDetailsModel) ToDomain() *partner.BillingDetails {
	b := &partner.BillingDetails{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SoftDeletable:     toSoftDeletable(m.DeletedAt),
		Name:              m.Name,
		Lastname:          m.Lastname,
		Company:           m.Company,
		RFC:               m.RFC,
		Clabe:             m.Clabe,
		CheckAccount:      m.CheckAccount,
		CardNumber:        m.CardNumber,
		Phone:             m.Phone,
		Email:             m.Email,
		AddressID:         m.AddressID,
	}
	if m.Address != nil {
		b.Address = m.Address.ToDomain()
	}
	return b
}

// FromDomain populates the persistence model from a domain BillingDetails entity.
// The address is written separately by the repository.
func (m *BillingDetailsModel) FromDomain(b *partner.BillingDetails) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.DeletedAt = fromSoftDeletable(b.SoftDeletable)
	m.Name = b.Name
	m.Lastname = b.Lastname
	m.Company = b.Company
	m.RFC = b.RFC
	m.Clabe = b.Clabe
	m.CheckAccount = b.CheckAccount
	m.CardNumber = b.CardNumber
	m.Phone = b.Phone
	m.Email = b.Email
	m.AddressID = b.AddressID
}
