package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/trade"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with every table migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a different database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, name+" description")
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID int64, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductInput{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		ImageURL:    "https://img.example.com/" + name + ".png",
		Quantity:    10,
		Brand:       "Acme",
		CategoryID:  categoryID,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

func seedCustomer(t *testing.T, db *gorm.DB, name, company string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(partner.CustomerInput{
		Name:     name,
		Lastname: "Pérez",
		Email:    name + "@example.com",
		Company:  company,
		RFC:      "xaxx010101000",
		Phone:    5512345678,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(context.Background(), c))
	return c
}

func billingInput(company string) partner.BillingDetailsInput {
	return partner.BillingDetailsInput{
		Name:         "Mario",
		Lastname:     "Toledo",
		Company:      company,
		RFC:          "TOMA800101AB1",
		Clabe:        "012180001234567891",
		CheckAccount: "0123456789",
		Phone:        5598765432,
		Email:        "facturas@example.com",
		Address: partner.AddressInput{
			Street:        "Av. Reforma",
			OutsideNumber: "100",
			Colony:        "Centro",
			City:          "CDMX",
			CP:            "06000",
		},
	}
}

func seedBilling(t *testing.T, db *gorm.DB, company string) *partner.BillingDetails {
	t.Helper()
	b, err := partner.NewBillingDetails(billingInput(company))
	require.NoError(t, err)
	require.NoError(t, NewGormBillingDetailsRepository(db).Save(context.Background(), b))
	return b
}

type quotationFixture struct {
	customer *partner.Customer
	billing  *partner.BillingDetails
	products []*catalog.Product
}

func seedFixture(t *testing.T, db *gorm.DB) quotationFixture {
	t.Helper()
	cat := seedCategory(t, db, "Herramientas")
	return quotationFixture{
		customer: seedCustomer(t, db, "Ana", "Aceros SA"),
		billing:  seedBilling(t, db, "MRTOLDO"),
		products: []*catalog.Product{
			seedProduct(t, db, cat.ID, "martillo", "1200.50"),
			seedProduct(t, db, cat.ID, "taladro", "450.00"),
		},
	}
}

func (f quotationFixture) input(t *testing.T, iva bool, status trade.QuotationStatus) trade.QuotationInput {
	t.Helper()
	first, err := trade.NewQuotationItem(f.products[0].ID, 2, f.products[0].Price)
	require.NoError(t, err)
	second, err := trade.NewQuotationItem(f.products[1].ID, 1, f.products[1].Price)
	require.NoError(t, err)
	return trade.QuotationInput{
		CustomerID:       f.customer.ID,
		BillingDetailsID: f.billing.ID,
		IVA:              iva,
		Notes:            "Entrega en 5 días",
		Status:           status,
		Items:            []trade.QuotationItem{first, second},
	}
}

func seedQuotation(t *testing.T, db *gorm.DB, f quotationFixture, iva bool, status trade.QuotationStatus, date time.Time) *trade.Quotation {
	t.Helper()
	q, err := trade.NewQuotation(f.input(t, iva, status))
	require.NoError(t, err)
	q.Date = date
	require.NoError(t, NewGormQuotationRepository(db).Create(context.Background(), q))
	return q
}
