package persistence

import (
	"strings"

	"github.com/mrtoldo/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns defaultDir when the input is invalid or empty.
func ValidateSortOrder(orderDir, defaultDir string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return defaultDir
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
// Whitelist values are the qualified column to order by.
func ValidateSortField(sortField string, allowedFields map[string]string, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if column, ok := allowedFields[trimmed]; ok {
		return column
	}
	return defaultField
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]string{
	"id":         "categories.id",
	"name":       "categories.name",
	"created_at": "categories.created_at",
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]string{
	"id":         "products.id",
	"name":       "products.name",
	"price":      "products.price",
	"quantity":   "products.quantity",
	"brand":      "products.brand",
	"created_at": "products.created_at",
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]string{
	"id":       "customers.id",
	"name":     "customers.name",
	"lastname": "customers.lastname",
	"company":  "customers.company",
	"email":    "customers.email",
}

// BillingDetailsSortFields contains allowed sort fields for billing details
var BillingDetailsSortFields = map[string]string{
	"id":      "billing_details.id",
	"name":    "billing_details.name",
	"company": "billing_details.company",
	"rfc":     "billing_details.rfc",
}

// QuotationSortFields contains allowed sort fields for quotations
var QuotationSortFields = map[string]string{
	"id":     "quotations.id",
	"date":   "quotations.date",
	"total":  "quotations.total",
	"status": "quotations.status",
}

// orderClause builds a whitelisted ORDER BY expression
func orderClause(filter shared.Filter, allowed map[string]string, defaultField, defaultDir string) string {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	return field + " " + ValidateSortOrder(filter.OrderDir, defaultDir)
}
