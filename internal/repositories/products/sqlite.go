package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tinashem/dukabook/internal/common"
	"github.com/tinashem/dukabook/internal/dbx"
	"github.com/tinashem/dukabook/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const productColumns = `id, shop_id, name, description, sku, barcode, buying_price, selling_price,
	stock, min_stock, unit, is_active, created_at, updated_at`

func (r *SQLiteRepository) Create(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, productArgs(p)...)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			shop_id = excluded.shop_id,
			name = excluded.name,
			description = excluded.description,
			sku = excluded.sku,
			barcode = excluded.barcode,
			buying_price = excluded.buying_price,
			selling_price = excluded.selling_price,
			stock = excluded.stock,
			min_stock = excluded.min_stock,
			unit = excluded.unit,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, productArgs(p)...)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select product: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) List(ctx context.Context, shopID string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE shop_id = ? AND is_active = 1 ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	defer rows.Close()

	var result []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *models.Product) error {
	query := `UPDATE products SET name = ?, description = ?, sku = ?, barcode = ?,
		buying_price = ?, selling_price = ?, stock = ?, min_stock = ?, unit = ?,
		is_active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.SKU, p.Barcode, p.BuyingPrice, p.SellingPrice,
		p.Stock, p.MinStock, p.Unit, p.IsActive, p.UpdatedAt.UnixMilli(), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireOneRow(res, "product", p.ID)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireOneRow(res, "product", id)
}

func (r *SQLiteRepository) AddStock(ctx context.Context, id string, delta float64, updatedAt int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?`, delta, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	return requireOneRow(res, "product", id)
}

func requireOneRow(res sql.Result, kind, id string) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func productArgs(p *models.Product) []any {
	return []any{
		p.ID, p.ShopID, p.Name, p.Description, p.SKU, p.Barcode,
		p.BuyingPrice, p.SellingPrice, p.Stock, p.MinStock, p.Unit,
		p.IsActive, p.CreatedAt.UnixMilli(), p.UpdatedAt.UnixMilli(),
	}
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	var createdAt, updatedAt int64
	err := row.Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &p.SKU, &p.Barcode,
		&p.BuyingPrice, &p.SellingPrice, &p.Stock, &p.MinStock, &p.Unit,
		&p.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	p.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return p, nil
}
