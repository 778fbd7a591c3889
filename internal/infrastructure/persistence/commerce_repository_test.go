package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSupplier(t *testing.T, companyID uuid.UUID, first string) *partner.Supplier {
	t.Helper()
	s, err := partner.NewSupplier(companyID, partner.SupplierDetails{
		FirstName: first, LastName: "Goods", Address: "Dock 4", Phone: "+351 555 0101",
	})
	require.NoError(t, err)
	return s
}

func TestGormSupplierRepository_FindAll(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormSupplierRepository(db, db)
	ctx := context.Background()
	companyID := uuid.New()

	for _, name := range []string{"Maria", "Mario", "Joao"} {
		require.NoError(t, repo.Save(ctx, newTestSupplier(t, companyID, name)))
	}

	found, err := repo.FindAll(ctx, companyID, partner.SupplierDetails{FirstName: "MAR"}, shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.FindAll(ctx, companyID, partner.SupplierDetails{FirstName: "mar", Phone: "0101"}, shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.FindAll(ctx, companyID, partner.SupplierDetails{FirstName: "100%"}, shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGormSupplierRepository_WildcardsMatchLiterally(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormSupplierRepository(db, db)
	ctx := context.Background()
	companyID := uuid.New()

	for _, name := range []string{"50% Outlet", "500 Traders", "North_Star", "Northwest"} {
		require.NoError(t, repo.Save(ctx, newTestSupplier(t, companyID, name)))
	}

	found, err := repo.FindAll(ctx, companyID, partner.SupplierDetails{FirstName: "50%"}, shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "50% Outlet", found[0].Details.FirstName)

	found, err = repo.FindAll(ctx, companyID, partner.SupplierDetails{FirstName: "north_"}, shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "North_Star", found[0].Details.FirstName)
}

func TestGormProductRepository(t *testing.T) {
	db := newSQLiteDB(t)
	products := NewGormProductRepository(db, db)
	suppliers := NewGormSupplierRepository(db, db)
	ctx := context.Background()
	companyID := uuid.New()

	supplier := newTestSupplier(t, companyID, "Ines")
	require.NoError(t, suppliers.Save(ctx, supplier))

	product, err := catalog.NewProduct(companyID, "Oak Chair", decimal.RequireFromString("49.90"))
	require.NoError(t, err)
	width := decimal.NewFromInt(45)
	product.SupplierID = &supplier.ID
	product.IsOwnedByShop = false
	product.Dimensions = &catalog.Dimensions{Width: &width}
	require.NoError(t, product.ReplaceImages([]string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}))
	require.NoError(t, products.Save(ctx, product))

	t.Run("reads associations back", func(t *testing.T) {
		found, err := products.FindByID(ctx, companyID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}, found.Images)
		require.NotNil(t, found.Dimensions)
		require.NotNil(t, found.Dimensions.Width)
		assert.True(t, width.Equal(*found.Dimensions.Width))
		assert.Nil(t, found.Dimensions.Height)
		require.NotNil(t, found.Supplier)
		assert.Equal(t, "Ines", found.Supplier.FirstName)
	})

	t.Run("save replaces images and clears dimensions", func(t *testing.T) {
		product.Dimensions = nil
		require.NoError(t, product.ReplaceImages([]string{"https://cdn.example.com/c.png"}))
		require.NoError(t, products.Save(ctx, product))

		found, err := products.FindByID(ctx, companyID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.example.com/c.png"}, found.Images)
		assert.Nil(t, found.Dimensions)
	})

	t.Run("filters by name and ownership", func(t *testing.T) {
		owned := true
		found, err := products.FindAll(ctx, companyID, catalog.ProductFilter{Name: "oak"}, shared.NewPageRequest(0, 10))
		require.NoError(t, err)
		assert.Len(t, found, 1)

		found, err = products.FindAll(ctx, companyID, catalog.ProductFilter{IsOwnedByShop: &owned}, shared.NewPageRequest(0, 10))
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("a deleted supplier is no longer attached", func(t *testing.T) {
		require.NoError(t, suppliers.SoftDelete(ctx, companyID, supplier.ID))

		found, err := products.FindByID(ctx, companyID, product.ID)
		require.NoError(t, err)
		assert.Nil(t, found.Supplier)
		assert.Equal(t, &supplier.ID, found.SupplierID)
	})
}

func TestGormPurchaseRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormPurchaseRepository(db, db)
	ctx := context.Background()
	companyID, supplierID := uuid.New(), uuid.New()

	line1, err := trade.NewLine(uuid.New(), 2, decimal.NewFromInt(10))
	require.NoError(t, err)
	line2, err := trade.NewLine(uuid.New(), 1, decimal.NewFromInt(5))
	require.NoError(t, err)

	purchase, err := trade.NewPurchase(companyID, supplierID, decimal.NewFromInt(25), []trade.Line{line1, line2})
	require.NoError(t, err)
	due := time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)
	purchase.DueDate = &due
	require.NoError(t, repo.Save(ctx, purchase))

	found, err := repo.FindByID(ctx, companyID, purchase.ID)
	require.NoError(t, err)
	assert.Len(t, found.Details, 2)

	purchase.Details = []trade.Line{line1}
	purchase.Status = trade.StatusPaid
	require.NoError(t, repo.Save(ctx, purchase))

	found, err = repo.FindByID(ctx, companyID, purchase.ID)
	require.NoError(t, err)
	require.Len(t, found.Details, 1)
	assert.Equal(t, line1.ProductID, found.Details[0].ProductID)

	paid := trade.StatusPaid
	sameDay := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	list, err := repo.FindAll(ctx, companyID, trade.PurchaseFilter{Status: &paid, DueDate: &sameDay}, shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	nextDay := sameDay.AddDate(0, 0, 1)
	list, err = repo.FindAll(ctx, companyID, trade.PurchaseFilter{DueDate: &nextDay}, shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGormSaleRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormSaleRepository(db, db)
	ctx := context.Background()
	companyID, customerID := uuid.New(), uuid.New()

	line, err := trade.NewLine(uuid.New(), 3, decimal.NewFromInt(4))
	require.NoError(t, err)
	sale, err := trade.NewSale(companyID, customerID, decimal.Zero, []trade.Line{line})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sale))

	list, err := repo.FindAll(ctx, companyID, trade.SaleFilter{CustomerID: &customerID}, shared.NewPageRequest(0, 10))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, decimal.NewFromInt(12).Equal(list[0].TotalCost))
	assert.Len(t, list[0].Details, 1)

	require.NoError(t, repo.SoftDelete(ctx, companyID, sale.ID))
	_, err = repo.FindByID(ctx, companyID, sale.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
