package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomerInput() CustomerInput {
	return CustomerInput{
		Name:     "John",
		Lastname: "Doe",
		Email:    "john.doe@email.com",
		Company:  "Doe Inc.",
		RFC:      "doe123456789",
		Phone:    5551234567,
	}
}

func validBillingInput() BillingDetailsInput {
	return BillingDetailsInput{
		Name:         "John",
		Lastname:     "Doe",
		Company:      "Doe Inc.",
		RFC:          "DOE123456789",
		Clabe:        "123456789012345678",
		CheckAccount: "9876543210",
		Phone:        5551234567,
		Email:        "billing@doeinc.com",
		Address: AddressInput{
			Street:        "Main St",
			OutsideNumber: "123",
			Colony:        "Downtown",
			City:          "Metropolis",
			CP:            "12345",
		},
	}
}

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(validCustomerInput())
	require.NoError(t, err)
	assert.Equal(t, "DOE123456789", c.RFC)
	assert.Equal(t, "John Doe", c.FullName())

	tests := []struct {
		name    string
		mutate  func(*CustomerInput)
		wantMsg string
	}{
		{"name", func(in *CustomerInput) { in.Name = "" }, "Name is required."},
		{"lastname", func(in *CustomerInput) { in.Lastname = "" }, "Lastname is required."},
		{"email", func(in *CustomerInput) { in.Email = "not-an-email" }, "Invalid email address."},
		{"company", func(in *CustomerInput) { in.Company = "" }, "Company is required."},
		{"rfc", func(in *CustomerInput) { in.RFC = "" }, "RFC is required."},
		{"phone", func(in *CustomerInput) { in.Phone = 0 }, "Phone must be a number."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCustomerInput()
			tt.mutate(&in)
			_, err := NewCustomer(in)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestCustomer_Update(t *testing.T) {
	c, err := NewCustomer(validCustomerInput())
	require.NoError(t, err)

	in := validCustomerInput()
	in.Company = "Acme"
	require.NoError(t, c.Update(in))
	assert.Equal(t, "Acme", c.Company)
	assert.Equal(t, 2, c.Version)
}

func TestNewBillingDetails(t *testing.T) {
	b, err := NewBillingDetails(validBillingInput())
	require.NoError(t, err)
	assert.Equal(t, "Main St", b.Address.Street)
	assert.Empty(t, b.CardNumber, "card number is optional")
	assert.Equal(t, "Main St 123, Downtown, Metropolis, C.P. 12345", b.Address.Line())

	in := validBillingInput()
	in.Address.CP = ""
	_, err = NewBillingDetails(in)
	require.Error(t, err)
	assert.Equal(t, "Postal code is required.", err.Error())

	in = validBillingInput()
	in.Clabe = " "
	_, err = NewBillingDetails(in)
	require.Error(t, err)
	assert.Equal(t, "CLABE is required.", err.Error())
}

func TestBillingDetails_UpdateKeepsAddressIdentity(t *testing.T) {
	b, err := NewBillingDetails(validBillingInput())
	require.NoError(t, err)
	b.ID = 4
	b.AddressID = 9
	b.Address.ID = 9

	in := validBillingInput()
	in.Address.City = "Gotham"
	in.CardNumber = "4111111111111111"
	require.NoError(t, b.Update(in))

	assert.Equal(t, int64(9), b.Address.ID)
	assert.Equal(t, "Gotham", b.Address.City)
	assert.Equal(t, "4111111111111111", b.CardNumber)
}
