package persistence

import (
	"context"
	"time"

	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/domain/trade"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var quotationSearch = textSearch{
	Text: []string{
		"customers.name", "customers.lastname", "customers.email", "customers.company",
	},
	Decimals: []string{"quotations.total"},
	Equals:   []string{"quotations.status"},
}

const quotationSummaryColumns = "quotations.id, quotations.date, quotations.customer_id, " +
	"customers.name AS customer_name, customers.lastname AS customer_lastname, " +
	"customers.email AS customer_email, customers.company AS customer_company, " +
	"quotations.billing_details_id, quotations.iva, quotations.subtotal, " +
	"quotations.total, quotations.status"

// quotationSummaryRow is the scan target of the listing join
type quotationSummaryRow struct {
	ID               int64
	Date             time.Time
	CustomerID       int64
	CustomerName     string
	CustomerLastname string
	CustomerEmail    string
	CustomerCompany  string
	BillingDetailsID int64
	IVA              bool `gorm:"column:iva"`
	Subtotal         decimal.Decimal
	Total            decimal.Decimal
	Status           trade.QuotationStatus
}

func (row quotationSummaryRow) toDomain() trade.QuotationSummary {
	return trade.QuotationSummary{
		ID:               row.ID,
		Date:             row.Date,
		CustomerID:       row.CustomerID,
		CustomerName:     row.CustomerName,
		CustomerLastname: row.CustomerLastname,
		CustomerEmail:    row.CustomerEmail,
		CustomerCompany:  row.CustomerCompany,
		BillingDetailsID: row.BillingDetailsID,
		IVA:              row.IVA,
		Subtotal:         row.Subtotal,
		Total:            row.Total,
		Status:           row.Status,
	}
}

// GormQuotationRepository implements QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("product_id ASC") })
}

// FindByID finds a live quotation with its line items
func (r *GormQuotationRepository) FindByID(ctx context.Context, id int64) (*trade.Quotation, error) {
	return first[models.QuotationModel, trade.Quotation](r.db.WithContext(ctx).Scopes(withItems), "id = ?", id)
}

// FindDetail loads the quotation with every association needed to print it.
// Soft deleted products, billing details and addresses are still loaded.
func (r *GormQuotationRepository) FindDetail(ctx context.Context, id int64) (*trade.QuotationDetail, error) {
	unscoped := func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }

	var model models.QuotationModel
	err := r.db.WithContext(ctx).
		Scopes(withItems).
		Preload("Items.Product", unscoped).
		Preload("Customer").
		Preload("BillingDetails", unscoped).
		Preload("BillingDetails.Address", unscoped).
		First(&model, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDetail(), nil
}

func (r *GormQuotationRepository) summaries(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Joins("JOIN customers ON customers.id = quotations.customer_id").
		Scopes(quotationSearch.scope(filter.Search))
	if status := filter.StringFilter("status"); status != "" {
		query = query.Where("quotations.status = ?", status)
	}
	return query
}

// FindFiltered lists quotations joined with their customer, newest first
func (r *GormQuotationRepository) FindFiltered(ctx context.Context, filter shared.Filter) ([]trade.QuotationSummary, error) {
	var rows []quotationSummaryRow
	err := r.summaries(ctx, filter).
		Select(quotationSummaryColumns).
		Scopes(paginate(filter)).
		Order(orderClause(filter, QuotationSortFields, "quotations.date", "DESC")).
		Order("quotations.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return summaryRowsToDomain(rows), nil
}

// Count counts quotations matching the filter
func (r *GormQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.summaries(ctx, filter).Count(&count).Error
	return count, err
}

// Create inserts the quotation and its line items in one transaction
func (r *GormQuotationRepository) Create(ctx context.Context, quotation *trade.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createQuotation(tx, quotation)
	})
}

func createQuotation(tx *gorm.DB, quotation *trade.Quotation) error {
	var model models.QuotationModel
	model.FromDomain(quotation)
	if err := tx.Omit(clause.Associations).Create(&model).Error; err != nil {
		return translateWriteError(err)
	}
	quotation.ID = model.ID
	return insertItems(tx, quotation)
}

func insertItems(tx *gorm.DB, quotation *trade.Quotation) error {
	if len(quotation.Items) == 0 {
		return nil
	}
	items := make([]models.QuotationItemModel, len(quotation.Items))
	for i := range quotation.Items {
		quotation.Items[i].QuotationID = quotation.ID
		items[i].FromDomain(quotation.Items[i])
	}
	return translateWriteError(tx.Omit(clause.Associations).Create(&items).Error)
}

// Update writes the quotation row and replaces every line item in one transaction.
// The row must still be at the version it was loaded with, Version-1.
func (r *GormQuotationRepository) Update(ctx context.Context, quotation *trade.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.QuotationModel{}).
			Where("id = ? AND version = ?", quotation.ID, quotation.Version-1).
			Updates(map[string]any{
				"customer_id":        quotation.CustomerID,
				"billing_details_id": quotation.BillingDetailsID,
				"iva":                quotation.IVA,
				"subtotal":           quotation.Subtotal,
				"total":              quotation.Total,
				"notes":              quotation.Notes,
				"status":             quotation.Status.String(),
				"version":            quotation.Version,
				"updated_at":         quotation.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return staleOrMissing(tx, quotation.ID)
		}

		if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}
		return insertItems(tx, quotation)
	})
}

// staleOrMissing tells a concurrent write apart from a deleted quotation
func staleOrMissing(tx *gorm.DB, id int64) error {
	var count int64
	if err := tx.Model(&models.QuotationModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConflict
}

// UpdateStatus writes only the status column
func (r *GormQuotationRepository) UpdateStatus(ctx context.Context, id int64, status trade.QuotationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status.String(), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Duplicate copies the source quotation and its line items in one transaction
func (r *GormQuotationRepository) Duplicate(ctx context.Context, sourceID int64) (*trade.Quotation, error) {
	var dup *trade.Quotation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source models.QuotationModel
		if err := tx.Scopes(withItems).First(&source, "id = ?", sourceID).Error; err != nil {
			return translateNotFound(err)
		}
		dup = source.ToDomain().Duplicate()
		return createQuotation(tx, dup)
	})
	if err != nil {
		return nil, err
	}
	return dup, nil
}

// Delete removes the line items and then the quotation row
func (r *GormQuotationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.QuotationModel
		if err := tx.Select("id").First(&model, "id = ?", id).Error; err != nil {
			return translateNotFound(err)
		}
		if err := tx.Where("quotation_id = ?", id).Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.QuotationModel{}, "id = ?", id).Error
	})
}

// CountAll counts live quotations
func (r *GormQuotationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QuotationModel{}).Count(&count).Error
	return count, err
}

// SumTotalByStatus sums totals of live quotations per status
func (r *GormQuotationRepository) SumTotalByStatus(ctx context.Context) (trade.StatusTotals, error) {
	var rows []struct {
		Status trade.QuotationStatus
		Total  decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Select("status, COALESCE(SUM(total), 0) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return trade.StatusTotals{}, err
	}

	totals := trade.StatusTotals{Paid: decimal.Zero, Pending: decimal.Zero}
	for _, row := range rows {
		switch row.Status {
		case trade.QuotationStatusPaid:
			totals.Paid = shared.RoundMoney(row.Total)
		case trade.QuotationStatusPending:
			totals.Pending = shared.RoundMoney(row.Total)
		}
	}
	return totals, nil
}

// Latest returns the n most recent quotations
func (r *GormQuotationRepository) Latest(ctx context.Context, n int) ([]trade.QuotationSummary, error) {
	var rows []quotationSummaryRow
	err := r.summaries(ctx, shared.Filter{}).
		Select(quotationSummaryColumns).
		Order("quotations.date DESC").
		Order("quotations.id DESC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return summaryRowsToDomain(rows), nil
}

// MonthlyRevenue returns one entry per calendar month from since up to now, oldest first.
// Months without quotations are reported with a zero total.
func (r *GormQuotationRepository) MonthlyRevenue(ctx context.Context, since time.Time) ([]trade.MonthlyRevenue, error) {
	start := monthStart(since)

	var rows []struct {
		Date  time.Time
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Select("date, total").
		Where("date >= ?", start).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[time.Time]decimal.Decimal)
	for _, row := range rows {
		m := monthStart(row.Date.In(start.Location()))
		byMonth[m] = byMonth[m].Add(row.Total)
	}

	end := monthStart(time.Now().In(start.Location()))
	var out []trade.MonthlyRevenue
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		out = append(out, trade.MonthlyRevenue{Month: m, Total: shared.RoundMoney(byMonth[m])})
	}
	return out, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func summaryRowsToDomain(rows []quotationSummaryRow) []trade.QuotationSummary {
	out := make([]trade.QuotationSummary, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out
}

// Ensure GormQuotationRepository implements QuotationRepository
var _ trade.QuotationRepository = (*GormQuotationRepository)(nil)
