package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/domain/trade"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCustomerRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("summaries aggregate live quotations per status", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCustomerRepository(db)
		f := seedFixture(t, db)
		other := seedCustomer(t, db, "Beto", "Bodegas SA")

		now := time.Now()
		seedQuotation(t, db, f, false, trade.QuotationStatusPending, now)
		seedQuotation(t, db, f, true, trade.QuotationStatusPaid, now)

		page, err := repo.FindFiltered(ctx, shared.Filter{Page: 1, PageSize: 6})
		require.NoError(t, err)
		require.Len(t, page, 2)

		assert.Equal(t, "Ana", page[0].Name)
		assert.Equal(t, int64(2), page[0].TotalQuotations)
		assert.True(t, decimal.RequireFromString("2851.00").Equal(page[0].TotalPending), page[0].TotalPending.String())
		assert.True(t, decimal.RequireFromString("3307.16").Equal(page[0].TotalPaid), page[0].TotalPaid.String())

		assert.Equal(t, other.ID, page[1].ID)
		assert.Zero(t, page[1].TotalQuotations)
		assert.True(t, page[1].TotalPaid.IsZero())
	})

	t.Run("search by phone and rfc", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCustomerRepository(db)
		seedCustomer(t, db, "Ana", "Aceros SA")

		byPhone, err := repo.Count(ctx, shared.Filter{Search: "5512345678"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), byPhone)

		byRFC, err := repo.Count(ctx, shared.Filter{Search: "xaxx"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), byRFC)

		none, err := repo.Count(ctx, shared.Filter{Search: "nadie"})
		require.NoError(t, err)
		assert.Zero(t, none)
	})

	t.Run("rfc is stored uppercase", func(t *testing.T) {
		db := setupTestDB(t)
		c := seedCustomer(t, db, "Ana", "Aceros SA")

		found, err := NewGormCustomerRepository(db).FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "XAXX010101000", found.RFC)
	})

	t.Run("options are ordered by name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCustomerRepository(db)
		seedCustomer(t, db, "Zoe", "Z")
		seedCustomer(t, db, "Ana", "A")

		options, err := repo.FindOptions(ctx)
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.Equal(t, "Ana", options[0].Name)
		assert.Equal(t, int64(5512345678), options[0].Phone)
	})

	t.Run("delete refuses customers with quotations", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCustomerRepository(db)
		f := seedFixture(t, db)
		seedQuotation(t, db, f, false, trade.QuotationStatusPending, time.Now())

		err := repo.Delete(ctx, f.customer.ID)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_STATE", domainErr.Code)

		exists, err := repo.Exists(ctx, f.customer.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormCustomerRepository(db)
		c := seedCustomer(t, db, "Ana", "Aceros SA")

		require.NoError(t, repo.Delete(ctx, c.ID))
		_, err := repo.FindByID(ctx, c.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, c.ID), shared.ErrNotFound)
	})
}

func TestGormBillingDetailsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save writes the address and links it", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormBillingDetailsRepository(db)
		b := seedBilling(t, db, "MRTOLDO")

		assert.NotZero(t, b.AddressID)
		assert.Equal(t, b.AddressID, b.Address.ID)

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Av. Reforma", found.Address.Street)
		assert.Equal(t, "06000", found.Address.CP)
	})

	t.Run("update rewrites the same address row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormBillingDetailsRepository(db)
		b := seedBilling(t, db, "MRTOLDO")
		addressID := b.AddressID

		in := billingInput("MRTOLDO SA de CV")
		in.Address.City = "Puebla"
		require.NoError(t, b.Update(in))
		require.NoError(t, repo.Save(ctx, b))

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "MRTOLDO SA de CV", found.Company)
		assert.Equal(t, addressID, found.AddressID)
		assert.Equal(t, "Puebla", found.Address.City)

		var addresses int64
		require.NoError(t, db.Model(&models.AddressModel{}).Count(&addresses).Error)
		assert.Equal(t, int64(1), addresses)
	})

	t.Run("soft delete also hides the unreferenced address", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormBillingDetailsRepository(db)
		b := seedBilling(t, db, "MRTOLDO")

		require.NoError(t, repo.SoftDelete(ctx, b.ID))

		_, err := repo.FindByID(ctx, b.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var live, all int64
		require.NoError(t, db.Model(&models.AddressModel{}).Count(&live).Error)
		require.NoError(t, db.Unscoped().Model(&models.AddressModel{}).Count(&all).Error)
		assert.Zero(t, live)
		assert.Equal(t, int64(1), all)

		assert.ErrorIs(t, repo.SoftDelete(ctx, b.ID), shared.ErrNotFound)
	})

	t.Run("summaries count quotations", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormBillingDetailsRepository(db)
		f := seedFixture(t, db)
		seedQuotation(t, db, f, false, trade.QuotationStatusPending, time.Now())

		page, err := repo.FindFiltered(ctx, shared.Filter{Page: 1, PageSize: 6, Search: "toldo"})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, int64(1), page[0].QuotationCount)
		assert.Equal(t, "Centro", page[0].Address.Colony)
	})

	t.Run("find all orders by company", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormBillingDetailsRepository(db)
		seedBilling(t, db, "Zeta")
		seedBilling(t, db, "Alfa")

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Alfa", all[0].Company)
	})
}
