package persistence

import (
	"context"

	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/domain/trade"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var customerSearch = textSearch{
	Text: []string{
		"customers.name", "customers.lastname", "customers.email",
		"customers.company", "customers.rfc",
	},
	Integers: []string{"customers.phone"},
}

// ErrCustomerHasQuotations is returned when deleting a customer still referenced by quotations
var ErrCustomerHasQuotations = shared.NewDomainError(
	shared.ErrInvalidState.Code,
	"El cliente tiene cotizaciones asociadas y no puede eliminarse",
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id int64) (*partner.Customer, error) {
	return first[models.CustomerModel, partner.Customer](r.db.WithContext(ctx), "id = ?", id)
}

// FindOptions returns every customer ordered by name
func (r *GormCustomerRepository) FindOptions(ctx context.Context) ([]partner.CustomerOption, error) {
	var options []partner.CustomerOption
	err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Select("id", "name", "lastname", "email", "phone", "company").
		Order("name ASC").
		Scan(&options).Error
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []partner.CustomerOption{}
	}
	return options, nil
}

// customerTotals is one row of the per customer quotation aggregate
type customerTotals struct {
	CustomerID      int64
	TotalQuotations int64
	TotalPending    decimal.Decimal
	TotalPaid       decimal.Decimal
}

// FindFiltered finds customers matching the filter with their quotation totals
func (r *GormCustomerRepository) FindFiltered(ctx context.Context, filter shared.Filter) ([]partner.CustomerSummary, error) {
	var customerModels []models.CustomerModel
	err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Scopes(customerSearch.scope(filter.Search), paginate(filter)).
		Order(orderClause(filter, CustomerSortFields, "customers.name", "ASC")).
		Find(&customerModels).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]partner.CustomerSummary, len(customerModels))
	if len(customerModels) == 0 {
		return summaries, nil
	}

	ids := make([]int64, len(customerModels))
	for i := range customerModels {
		ids[i] = customerModels[i].ID
	}

	var totals []customerTotals
	err = r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Select(
			"customer_id, COUNT(*) AS total_quotations, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN total ELSE 0 END), 0) AS total_pending, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN total ELSE 0 END), 0) AS total_paid",
			trade.QuotationStatusPending.String(), trade.QuotationStatusPaid.String(),
		).
		Where("customer_id IN ?", ids).
		Group("customer_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[int64]customerTotals, len(totals))
	for _, t := range totals {
		byCustomer[t.CustomerID] = t
	}

	for i := range customerModels {
		t := byCustomer[customerModels[i].ID]
		summaries[i] = partner.CustomerSummary{
			Customer:        *customerModels[i].ToDomain(),
			TotalQuotations: t.TotalQuotations,
			TotalPending:    shared.RoundMoney(t.TotalPending),
			TotalPaid:       shared.RoundMoney(t.TotalPaid),
		}
	}
	return summaries, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Scopes(customerSearch.scope(filter.Search)).
		Count(&count).Error
	return count, err
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	var model models.CustomerModel
	model.FromDomain(customer)
	if err := saveModel(r.db.WithContext(ctx), &model, customer.IsNew()); err != nil {
		return err
	}
	customer.ID = model.ID
	return nil
}

// Delete removes the customer unless quotations still reference it
func (r *GormCustomerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var referenced int64
		if err := tx.Unscoped().Model(&models.QuotationModel{}).
			Where("customer_id = ?", id).
			Count(&referenced).Error; err != nil {
			return err
		}
		if referenced > 0 {
			return ErrCustomerHasQuotations
		}

		result := tx.Delete(&models.CustomerModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Exists reports whether a customer with the ID exists
func (r *GormCustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
