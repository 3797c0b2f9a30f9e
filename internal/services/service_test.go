package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tinashem/dukabook/internal/models"
	"github.com/tinashem/dukabook/internal/repositories/outbox"
	"github.com/tinashem/dukabook/internal/storage"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func pendingEntries(t *testing.T, db *sql.DB) []models.OutboxEntry {
	t.Helper()
	entries, err := outbox.NewSQLiteRepository(db).Oldest(context.Background(), 100)
	require.NoError(t, err)
	return entries
}

func seedProduct(t *testing.T, db *sql.DB, stock float64) *models.Product {
	t.Helper()
	svc := NewProductService(db)
	p := &models.Product{
		ShopID:       "shop-1",
		Name:         "Maize flour 2kg",
		SellingPrice: 250,
		BuyingPrice:  190,
		Stock:        stock,
		Unit:         "pcs",
	}
	require.NoError(t, svc.Create(context.Background(), p))
	return p
}
