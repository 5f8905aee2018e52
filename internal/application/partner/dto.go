package partner

import (
	"strconv"
	"strings"
	"time"

	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ListFilter holds the query parameters of a dashboard listing
type ListFilter struct {
	Search    string `form:"query"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

func (f ListFilter) toDomain() shared.Filter {
	return shared.Filter{
		Search:   f.Search,
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.SortBy,
		OrderDir: f.SortOrder,
	}.Normalize()
}

// CustomerRequest represents a request to create or replace a customer.
// Phone arrives as a string of digits from the dashboard form.
type CustomerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Lastname string `json:"lastname" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Company  string `json:"company" binding:"required,max=200"`
	RFC      string `json:"rfc" binding:"required,max=13"`
	Phone    string `json:"phone" binding:"required,numeric_string"`
}

func (r CustomerRequest) toInput() (partner.CustomerInput, error) {
	phone, err := parsePhone(r.Phone)
	if err != nil {
		return partner.CustomerInput{}, err
	}
	return partner.CustomerInput{
		Name:     r.Name,
		Lastname: r.Lastname,
		Email:    r.Email,
		Company:  r.Company,
		RFC:      r.RFC,
		Phone:    phone,
	}, nil
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	RFC       string    `json:"rfc"`
	Phone     int64     `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse is a customer row of the dashboard table with its quotation totals
type CustomerListResponse struct {
	CustomerResponse
	TotalQuotations int64           `json:"total_quotations"`
	TotalPending    decimal.Decimal `json:"total_pending"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
}

// CustomerOption is a customer entry of the quotation form select
type CustomerOption struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Phone    int64  `json:"phone"`
	Company  string `json:"company"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Lastname:  c.Lastname,
		Email:     c.Email,
		Company:   c.Company,
		RFC:       c.RFC,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCustomerListResponses converts customer summaries
func ToCustomerListResponses(summaries []partner.CustomerSummary) []CustomerListResponse {
	responses := make([]CustomerListResponse, len(summaries))
	for i := range summaries {
		s := &summaries[i]
		responses[i] = CustomerListResponse{
			CustomerResponse: ToCustomerResponse(&s.Customer),
			TotalQuotations:  s.TotalQuotations,
			TotalPending:     s.TotalPending,
			TotalPaid:        s.TotalPaid,
		}
	}
	return responses
}

// AddressRequest is the address written inline with billing details
type AddressRequest struct {
	Street        string `json:"street" binding:"required,max=200"`
	OutsideNumber string `json:"outside_number" binding:"required,max=20"`
	Colony        string `json:"colony" binding:"required,max=100"`
	City          string `json:"city" binding:"required,max=100"`
	CP            string `json:"cp" binding:"required,numeric_string,max=10"`
}

// BillingDetailsRequest represents a request to create or replace billing details
type BillingDetailsRequest struct {
	Name         string         `json:"name" binding:"required,max=100"`
	Lastname     string         `json:"lastname" binding:"required,max=100"`
	Company      string         `json:"company" binding:"required,max=200"`
	RFC          string         `json:"rfc" binding:"required,max=13"`
	Clabe        string         `json:"clabe" binding:"required,numeric_string,max=18"`
	CheckAccount string         `json:"check_account" binding:"required,max=30"`
	CardNumber   string         `json:"card_number" binding:"omitempty,numeric_string,max=19"`
	Phone        string         `json:"phone" binding:"required,numeric_string"`
	Email        string         `json:"email" binding:"required,email,max=200"`
	Address      AddressRequest `json:"address"`
}

func (r BillingDetailsRequest) toInput() (partner.BillingDetailsInput, error) {
	phone, err := parsePhone(r.Phone)
	if err != nil {
		return partner.BillingDetailsInput{}, err
	}
	return partner.BillingDetailsInput{
		Name:         r.Name,
		Lastname:     r.Lastname,
		Company:      r.Company,
		RFC:          r.RFC,
		Clabe:        r.Clabe,
		CheckAccount: r.CheckAccount,
		CardNumber:   r.CardNumber,
		Phone:        phone,
		Email:        r.Email,
		Address: partner.AddressInput{
			Street:        r.Address.Street,
			OutsideNumber: r.Address.OutsideNumber,
			Colony:        r.Address.Colony,
			City:          r.Address.City,
			CP:            r.Address.CP,
		},
	}, nil
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID            int64  `json:"id"`
	Street        string `json:"street"`
	OutsideNumber string `json:"outside_number"`
	Colony        string `json:"colony"`
	City          string `json:"city"`
	CP            string `json:"cp"`
	Line          string `json:"line"`
}

// BillingDetailsResponse represents billing details in API responses
type BillingDetailsResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Lastname       string          `json:"lastname"`
	Company        string          `json:"company"`
	RFC            string          `json:"rfc"`
	Clabe          string          `json:"clabe"`
	CheckAccount   string          `json:"check_account"`
	CardNumber     string          `json:"card_number,omitempty"`
	Phone          int64           `json:"phone"`
	Email          string          `json:"email"`
	Address        AddressResponse `json:"address"`
	QuotationCount *int64          `json:"quotation_count,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BillingDetailsOption is a billing details entry of the quotation form select
type BillingDetailsOption struct {
	ID      int64  `json:"id"`
	Company string `json:"company"`
	RFC     string `json:"rfc"`
	Clabe   string `json:"clabe"`
}

// ToBillingDetailsResponse converts domain BillingDetails to BillingDetailsResponse
func ToBillingDetailsResponse(b *partner.BillingDetails) BillingDetailsResponse {
	return BillingDetailsResponse{
		ID:           b.ID,
		Name:         b.Name,
		Lastname:     b.Lastname,
		Company:      b.Company,
		RFC:          b.RFC,
		Clabe:        b.Clabe,
		CheckAccount: b.CheckAccount,
		CardNumber:   b.CardNumber,
		Phone:        b.Phone,
		Email:        b.Email,
		Address: AddressResponse{
			ID:            b.Address.ID,
			Street:        b.Address.Street,
			OutsideNumber: b.Address.OutsideNumber,
			Colony:        b.Address.Colony,
			City:          b.Address.City,
			CP:            b.Address.CP,
			Line:          b.Address.Line(),
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBillingDetailsListResponses converts billing details summaries
func ToBillingDetailsListResponses(summaries []partner.BillingDetailsSummary) []BillingDetailsResponse {
	responses := make([]BillingDetailsResponse, len(summaries))
	for i := range summaries {
		resp := ToBillingDetailsResponse(&summaries[i].BillingDetails)
		count := summaries[i].QuotationCount
		resp.QuotationCount = &count
		responses[i] = resp
	}
	return responses
}

func parsePhone(s string) (int64, error) {
	phone, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || phone <= 0 {
		return 0, shared.InvalidInput("Phone must be a number.")
	}
	return phone, nil
}
