package trade

import (
	"time"

	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// QuotationListFilter holds the query parameters of the quotation listing
type QuotationListFilter struct {
	Search    string `form:"query"`
	Status    string `form:"status" binding:"omitempty,quotation_status"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

func (f QuotationListFilter) toDomain() shared.Filter {
	filter := shared.Filter{
		Search:   f.Search,
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.SortBy,
		OrderDir: f.SortOrder,
	}.Normalize()
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}

// QuotationItemRequest is a product line of a quotation
type QuotationItemRequest struct {
	ProductID int64            `json:"product_id" binding:"required,gt=0"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	Price     *decimal.Decimal `json:"price" binding:"required"`
}

// QuotationRequest represents a request to create or replace a quotation
type QuotationRequest struct {
	CustomerID       int64                  `json:"customer_id" binding:"required,gt=0"`
	BillingDetailsID int64                  `json:"billing_details_id" binding:"required,gt=0"`
	IVA              bool                   `json:"iva"`
	Notes            string                 `json:"notes" binding:"max=2000"`
	Status           string                 `json:"status" binding:"required,quotation_status"`
	Items            []QuotationItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r QuotationRequest) toInput() (trade.QuotationInput, error) {
	items := make([]trade.QuotationItem, len(r.Items))
	for i, item := range r.Items {
		if item.Price == nil {
			return trade.QuotationInput{}, ErrMissingPrice
		}
		items[i] = trade.QuotationItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     shared.RoundMoney(*item.Price),
		}
	}
	return trade.QuotationInput{
		CustomerID:       r.CustomerID,
		BillingDetailsID: r.BillingDetailsID,
		IVA:              r.IVA,
		Notes:            r.Notes,
		Status:           trade.QuotationStatus(r.Status),
		Items:            items,
	}, nil
}

// UpdateStatusRequest changes the payment status of a quotation
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,quotation_status"`
}

// QuotationItemResponse represents a line item in API responses
type QuotationItemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
}

// QuotationResponse represents a quotation with its items in API responses
type QuotationResponse struct {
	ID               int64                   `json:"id"`
	Date             time.Time               `json:"date"`
	CustomerID       int64                   `json:"customer_id"`
	BillingDetailsID int64                   `json:"billing_details_id"`
	IVA              bool                    `json:"iva"`
	Subtotal         decimal.Decimal         `json:"subtotal"`
	IVAAmount        decimal.Decimal         `json:"iva_amount"`
	Total            decimal.Decimal         `json:"total"`
	Notes            string                  `json:"notes"`
	Status           string                  `json:"status"`
	Items            []QuotationItemResponse `json:"items"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// QuotationListResponse is a row of the quotation table
type QuotationListResponse struct {
	ID               int64           `json:"id"`
	Date             time.Time       `json:"date"`
	CustomerID       int64           `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	CustomerLastname string          `json:"customer_lastname"`
	CustomerEmail    string          `json:"customer_email"`
	CustomerCompany  string          `json:"customer_company"`
	BillingDetailsID int64           `json:"billing_details_id"`
	IVA              bool            `json:"iva"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Total            decimal.Decimal `json:"total"`
	Status           string          `json:"status"`
}

// ToQuotationResponse converts a domain Quotation to QuotationResponse
func ToQuotationResponse(q *trade.Quotation) QuotationResponse {
	items := make([]QuotationItemResponse, len(q.Items))
	for i, item := range q.Items {
		items[i] = QuotationItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Amount:    item.Amount(),
		}
	}
	return QuotationResponse{
		ID:               q.ID,
		Date:             q.Date,
		CustomerID:       q.CustomerID,
		BillingDetailsID: q.BillingDetailsID,
		IVA:              q.IVA,
		Subtotal:         q.Subtotal,
		IVAAmount:        q.IVAAmount(),
		Total:            q.Total,
		Notes:            q.Notes,
		Status:           q.Status.String(),
		Items:            items,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// ToQuotationListResponses converts quotation summaries
func ToQuotationListResponses(summaries []trade.QuotationSummary) []QuotationListResponse {
	rows := make([]QuotationListResponse, len(summaries))
	for i, s := range summaries {
		rows[i] = QuotationListResponse{
			ID:               s.ID,
			Date:             s.Date,
			CustomerID:       s.CustomerID,
			CustomerName:     s.CustomerName,
			CustomerLastname: s.CustomerLastname,
			CustomerEmail:    s.CustomerEmail,
			CustomerCompany:  s.CustomerCompany,
			BillingDetailsID: s.BillingDetailsID,
			IVA:              s.IVA,
			Subtotal:         s.Subtotal,
			Total:            s.Total,
			Status:           s.Status.String(),
		}
	}
	return rows
}
