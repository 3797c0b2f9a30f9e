package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinashem/dukabook/internal/models"
)

func TestSaleRecord_DecrementsStockAndEnqueuesEverything(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 10)
	svc := NewSaleService(db)

	sale := &models.Sale{
		ShopID: "shop-1",
		Items: []models.SaleItem{
			{ProductID: p.ID, Quantity: 3, UnitPrice: 250},
		},
	}
	require.NoError(t, svc.Record(context.Background(), sale))

	assert.Equal(t, 750.0, sale.Subtotal)
	assert.Equal(t, 750.0, sale.Total)
	assert.Equal(t, models.PaymentCash, sale.PaymentMethod)

	got, err := NewProductService(db).Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got.Stock)

	// product create + product stock update + sale create
	entries := pendingEntries(t, db)
	require.Len(t, entries, 3)

	stockUpdate := entries[1]
	assert.Equal(t, models.TableProducts, stockUpdate.TableName)
	assert.Equal(t, models.ActionUpdate, stockUpdate.Action)
	var snapshot models.Product
	require.NoError(t, json.Unmarshal(stockUpdate.Payload, &snapshot))
	assert.Equal(t, 7.0, snapshot.Stock, "snapshot carries the post-sale stock")

	saleCreate := entries[2]
	assert.Equal(t, models.TableSales, saleCreate.TableName)
	assert.Equal(t, models.ActionCreate, saleCreate.Action)
	var saleSnapshot models.Sale
	require.NoError(t, json.Unmarshal(saleCreate.Payload, &saleSnapshot))
	require.Len(t, saleSnapshot.Items, 1, "line items travel inside the sale snapshot")
}

func TestSaleRecord_InsufficientStockRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 2)
	svc := NewSaleService(db)

	sale := &models.Sale{
		ShopID: "shop-1",
		Items: []models.SaleItem{
			{ProductID: p.ID, Quantity: 5, UnitPrice: 250},
		},
	}
	err := svc.Record(context.Background(), sale)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, err := NewProductService(db).Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Stock, "stock untouched after rollback")

	assert.Len(t, pendingEntries(t, db), 1, "only the seed product's create entry remains")
}

func TestSaleRecord_PartialFailureIsAtomic(t *testing.T) {
	db := newTestDB(t)
	ok := seedProduct(t, db, 10)
	low := seedProduct(t, db, 1)
	svc := NewSaleService(db)

	sale := &models.Sale{
		ShopID: "shop-1",
		Items: []models.SaleItem{
			{ProductID: ok.ID, Quantity: 4, UnitPrice: 100},
			{ProductID: low.ID, Quantity: 2, UnitPrice: 100},
		},
	}
	err := svc.Record(context.Background(), sale)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	first, err := NewProductService(db).Get(context.Background(), ok.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, first.Stock, "the already-applied decrement rolled back")

	assert.Len(t, pendingEntries(t, db), 2, "only the two seed entries remain")
}

func TestSaleRecord_NoItems(t *testing.T) {
	db := newTestDB(t)
	err := NewSaleService(db).Record(context.Background(), &models.Sale{ShopID: "shop-1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSaleVoid_RestoresStock(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 10)
	svc := NewSaleService(db)

	sale := &models.Sale{
		ShopID: "shop-1",
		Items:  []models.SaleItem{{ProductID: p.ID, Quantity: 3, UnitPrice: 250}},
	}
	require.NoError(t, svc.Record(context.Background(), sale))
	require.NoError(t, svc.Void(context.Background(), sale.ID))

	got, err := NewProductService(db).Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Stock)

	entries := pendingEntries(t, db)
	last := entries[len(entries)-1]
	assert.Equal(t, models.TableSales, last.TableName)
	assert.Equal(t, models.ActionDelete, last.Action)
}
