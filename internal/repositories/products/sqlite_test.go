package products

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinashem/dukabook/internal/common"
	"github.com/tinashem/dukabook/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE products (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  sku TEXT NOT NULL DEFAULT '',
  barcode TEXT NOT NULL DEFAULT '',
  buying_price REAL NOT NULL DEFAULT 0,
  selling_price REAL NOT NULL DEFAULT 0,
  stock REAL NOT NULL DEFAULT 0,
  min_stock REAL NOT NULL DEFAULT 0,
  unit TEXT NOT NULL DEFAULT 'pc',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func testProduct(id string) *models.Product {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.Product{
		ID: id, ShopID: "shop1", Name: "Sugar 1kg", SellingPrice: 2.5, BuyingPrice: 2.0,
		Stock: 10, Unit: "pc", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
}

func TestCreateGetList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testProduct("p1")))

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Sugar 1kg", got.Name)
	assert.Equal(t, 10.0, got.Stock)

	list, err := r.List(ctx, "shop1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = r.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpsert_ReplacesExisting(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	p := testProduct("p1")
	require.NoError(t, r.Create(ctx, p))

	p.Name = "Sugar 2kg"
	p.Stock = 4
	p.UpdatedAt = p.UpdatedAt.Add(time.Hour)
	require.NoError(t, r.Upsert(ctx, p))

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Sugar 2kg", got.Name)
	assert.Equal(t, 4.0, got.Stock)

	// upsert of an unseen id inserts
	require.NoError(t, r.Upsert(ctx, testProduct("p2")))
	_, err = r.GetByID(ctx, "p2")
	assert.NoError(t, err)
}

func TestAddStock(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testProduct("p1")))
	require.NoError(t, r.AddStock(ctx, "p1", -3, time.Now().UnixMilli()))

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7.0, got.Stock)

	assert.ErrorIs(t, r.AddStock(ctx, "missing", 1, time.Now().UnixMilli()), common.ErrNotFound)
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testProduct("p1")))
	require.NoError(t, r.Delete(ctx, "p1"))

	_, err := r.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, "p1"), common.ErrNotFound)
}
