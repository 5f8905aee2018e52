package partner

import (
	"strings"

	"github.com/mrtoldo/backend/internal/domain/shared"
)

// Address is owned by exactly one BillingDetails and is written inline with it
type Address struct {
	shared.BaseEntity
	shared.SoftDeletable
	Street        string
	OutsideNumber string
	Colony        string
	City          string
	CP            string
}

// AddressInput carries the editable address fields
type AddressInput struct {
	Street        string
	OutsideNumber string
	Colony        string
	City          string
	CP            string
}

// Line returns the address formatted on a single line
func (a Address) Line() string {
	parts := make([]string, 0, 4)
	if s := strings.TrimSpace(a.Street + " " + a.OutsideNumber); s != "" {
		parts = append(parts, s)
	}
	for _, p := range []string{a.Colony, a.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if a.CP != "" {
		parts = append(parts, "C.P. "+a.CP)
	}
	return strings.Join(parts, ", ")
}

// BillingDetails holds the bank and fiscal data printed on a quotation
type BillingDetails struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Name         string
	Lastname     string
	Company      string
	RFC          string
	Clabe        string
	CheckAccount string
	CardNumber   string
	Phone        int64
	Email        string
	AddressID    int64
	Address      Address
}

// BillingDetailsInput carries the editable billing details fields and the inline address
type BillingDetailsInput struct {
	Name         string
	Lastname     string
	Company      string
	RFC          string
	Clabe        string
	CheckAccount string
	CardNumber   string
	Phone        int64
	Email        string
	Address      AddressInput
}

// NewBillingDetails creates billing details with a new address
func NewBillingDetails(in BillingDetailsInput) (*BillingDetails, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return nil, err
	}
	b := &BillingDetails{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Address:           Address{BaseEntity: shared.NewBaseEntity()},
	}
	b.apply(in)
	return b, nil
}

// Update replaces the billing fields and the owned address in place
func (b *BillingDetails) Update(in BillingDetailsInput) error {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return err
	}
	b.apply(in)
	b.Touch()
	b.Address.Touch()
	b.IncrementVersion()
	return nil
}

func (b *BillingDetails) apply(in BillingDetailsInput) {
	b.Name = in.Name
	b.Lastname = in.Lastname
	b.Company = in.Company
	b.RFC = in.RFC
	b.Clabe = in.Clabe
	b.CheckAccount = in.CheckAccount
	b.CardNumber = in.CardNumber
	b.Phone = in.Phone
	b.Email = in.Email
	b.Address.Street = in.Address.Street
	b.Address.OutsideNumber = in.Address.OutsideNumber
	b.Address.Colony = in.Address.Colony
	b.Address.City = in.Address.City
	b.Address.CP = in.Address.CP
}

func (in BillingDetailsInput) trimmed() BillingDetailsInput {
	for _, s := range []*string{
		&in.Name, &in.Lastname, &in.Company, &in.RFC, &in.Clabe, &in.CheckAccount, &in.CardNumber, &in.Email,
		&in.Address.Street, &in.Address.OutsideNumber, &in.Address.Colony, &in.Address.City, &in.Address.CP,
	} {
		*s = strings.TrimSpace(*s)
	}
	in.RFC = strings.ToUpper(in.RFC)
	return in
}

func (in BillingDetailsInput) validate() error {
	if err := required(
		[2]string{"Name", in.Name},
		[2]string{"Lastname", in.Lastname},
		[2]string{"Company", in.Company},
		[2]string{"RFC", in.RFC},
		[2]string{"CLABE", in.Clabe},
		[2]string{"Check Account", in.CheckAccount},
	); err != nil {
		return err
	}
	if err := validatePhone(in.Phone); err != nil {
		return err
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return required(
		[2]string{"Street", in.Address.Street},
		[2]string{"Outside number", in.Address.OutsideNumber},
		[2]string{"Colony", in.Address.Colony},
		[2]string{"City", in.Address.City},
		[2]string{"Postal code", in.Address.CP},
	)
}

// BillingDetailsSummary is a billing details row of the dashboard listing
type BillingDetailsSummary struct {
	BillingDetails
	QuotationCount int64
}
