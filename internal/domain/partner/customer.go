package partner

import (
	"strings"

	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer is the person a quotation is addressed to. Customers are hard deleted.
type Customer struct {
	shared.BaseAggregateRoot
	Name     string
	Lastname string
	Email    string
	Company  string
	RFC      string
	Phone    int64
}

// CustomerInput carries the editable customer fields
type CustomerInput struct {
	Name     string
	Lastname string
	Email    string
	Company  string
	RFC      string
	Phone    int64
}

// NewCustomer creates a new customer
func NewCustomer(in CustomerInput) (*Customer, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := &Customer{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	c.apply(in)
	return c, nil
}

// Update replaces the editable fields of the customer
func (c *Customer) Update(in CustomerInput) error {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return err
	}
	c.apply(in)
	c.Touch()
	c.IncrementVersion()
	return nil
}

// FullName returns "name lastname"
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.Name + " " + c.Lastname)
}

func (c *Customer) apply(in CustomerInput) {
	c.Name = in.Name
	c.Lastname = in.Lastname
	c.Email = in.Email
	c.Company = in.Company
	c.RFC = in.RFC
	c.Phone = in.Phone
}

func (in CustomerInput) trimmed() CustomerInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Lastname = strings.TrimSpace(in.Lastname)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	in.RFC = strings.ToUpper(strings.TrimSpace(in.RFC))
	return in
}

func (in CustomerInput) validate() error {
	if err := required(
		[2]string{"Name", in.Name},
		[2]string{"Lastname", in.Lastname},
	); err != nil {
		return err
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if err := required(
		[2]string{"Company", in.Company},
		[2]string{"RFC", in.RFC},
	); err != nil {
		return err
	}
	return validatePhone(in.Phone)
}

// CustomerSummary is a customer row of the dashboard listing with its quotation aggregates
type CustomerSummary struct {
	Customer
	TotalQuotations int64
	TotalPending    decimal.Decimal
	TotalPaid       decimal.Decimal
}
