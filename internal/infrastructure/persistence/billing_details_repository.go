package persistence

import (
	"context"

	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var billingDetailsSearch = textSearch{
	Text: []string{
		"billing_details.name", "billing_details.lastname", "billing_details.company",
		"billing_details.rfc", "billing_details.clabe", "billing_details.check_account",
		"billing_details.email",
	},
	Integers: []string{"billing_details.phone"},
}

// GormBillingDetailsRepository implements BillingDetailsRepository using GORM
type GormBillingDetailsRepository struct {
	db *gorm.DB
}

// NewGormBillingDetailsRepository creates a new GormBillingDetailsRepository
func NewGormBillingDetailsRepository(db *gorm.DB) *GormBillingDetailsRepository {
	return &GormBillingDetailsRepository{db: db}
}

func withAddress(db *gorm.DB) *gorm.DB {
	return db.Preload("Address", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
}

// FindByID finds live billing details with their address
func (r *GormBillingDetailsRepository) FindByID(ctx context.Context, id int64) (*partner.BillingDetails, error) {
	return first[models.BillingDetailsModel, partner.BillingDetails](r.db.WithContext(ctx).Scopes(withAddress), "id = ?", id)
}

// FindAll returns every live billing details ordered by company
func (r *GormBillingDetailsRepository) FindAll(ctx context.Context) ([]partner.BillingDetails, error) {
	var billingModels []models.BillingDetailsModel
	if err := r.db.WithContext(ctx).Scopes(withAddress).Order("company ASC").Find(&billingModels).Error; err != nil {
		return nil, err
	}
	out := make([]partner.BillingDetails, len(billingModels))
	for i := range billingModels {
		out[i] = *billingModels[i].ToDomain()
	}
	return out, nil
}

// FindFiltered finds billing details matching the filter with their quotation count
func (r *GormBillingDetailsRepository) FindFiltered(ctx context.Context, filter shared.Filter) ([]partner.BillingDetailsSummary, error) {
	var billingModels []models.BillingDetailsModel
	err := r.db.WithContext(ctx).
		Model(&models.BillingDetailsModel{}).
		Scopes(withAddress, billingDetailsSearch.scope(filter.Search), paginate(filter)).
		Order(orderClause(filter, BillingDetailsSortFields, "billing_details.company", "ASC")).
		Find(&billingModels).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]partner.BillingDetailsSummary, len(billingModels))
	if len(billingModels) == 0 {
		return summaries, nil
	}

	ids := make([]int64, len(billingModels))
	for i := range billingModels {
		ids[i] = billingModels[i].ID
	}

	var counts []struct {
		BillingDetailsID int64
		QuotationCount   int64
	}
	err = r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Select("billing_details_id, COUNT(*) AS quotation_count").
		Where("billing_details_id IN ?", ids).
		Group("billing_details_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	byBilling := make(map[int64]int64, len(counts))
	for _, c := range counts {
		byBilling[c.BillingDetailsID] = c.QuotationCount
	}
	for i := range billingModels {
		summaries[i] = partner.BillingDetailsSummary{
			BillingDetails: *billingModels[i].ToDomain(),
			QuotationCount: byBilling[billingModels[i].ID],
		}
	}
	return summaries, nil
}

// Count counts billing details matching the filter
func (r *GormBillingDetailsRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BillingDetailsModel{}).
		Scopes(billingDetailsSearch.scope(filter.Search)).
		Count(&count).Error
	return count, err
}

// Save writes the address first so a new billing row can reference it
func (r *GormBillingDetailsRepository) Save(ctx context.Context, billing *partner.BillingDetails) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if billing.Address.ID == 0 && billing.AddressID != 0 {
			billing.Address.ID = billing.AddressID
		}

		var address models.AddressModel
		address.FromDomain(billing.Address)
		if err := saveModel(tx, &address, billing.Address.IsNew()); err != nil {
			return err
		}
		billing.Address.ID = address.ID
		billing.AddressID = address.ID

		var model models.BillingDetailsModel
		model.FromDomain(billing)
		if err := saveModel(tx, &model, billing.IsNew()); err != nil {
			return err
		}
		billing.ID = model.ID
		return nil
	})
}

// SoftDelete hides the billing details and its address once no live billing details use it
func (r *GormBillingDetailsRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.BillingDetailsModel
		if err := tx.Select("id", "address_id").First(&model, "id = ?", id).Error; err != nil {
			return translateNotFound(err)
		}

		if err := tx.Delete(&models.BillingDetailsModel{}, "id = ?", id).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.BillingDetailsModel{}).
			Where("address_id = ?", model.AddressID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		return tx.Delete(&models.AddressModel{}, "id = ?", model.AddressID).Error
	})
}

// Exists reports whether live billing details with the ID exist
func (r *GormBillingDetailsRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BillingDetailsModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Ensure GormBillingDetailsRepository implements BillingDetailsRepository
var _ partner.BillingDetailsRepository = (*GormBillingDetailsRepository)(nil)
