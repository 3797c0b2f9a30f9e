package sales

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

const saleColumns = `id, shop_id, customer_id, subtotal, tax, discount, total,
	payment_method, notes, sale_date, created_at, updated_at`

func saleArgs(s *models.Sale) []any {
	return []any{
		s.ID, s.ShopID, s.CustomerID, s.Subtotal, s.Tax, s.Discount, s.Total,
		string(s.PaymentMethod), s.Notes, s.SaleDate.UnixMilli(),
		s.CreatedAt.UnixMilli(), s.UpdatedAt.UnixMilli(),
	}
}

func (r *SQLiteRepository) Create(ctx context.Context, s *models.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, saleArgs(s)...); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return r.insertItems(ctx, s)
}

func (r *SQLiteRepository) Upsert(ctx context.Context, s *models.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			shop_id = excluded.shop_id,
			customer_id = excluded.customer_id,
			subtotal = excluded.subtotal,
			tax = excluded.tax,
			discount = excluded.discount,
			total = excluded.total,
			payment_method = excluded.payment_method,
			notes = excluded.notes,
			sale_date = excluded.sale_date,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, saleArgs(s)...); err != nil {
		return fmt.Errorf("failed to upsert sale: %w", err)
	}
	// replace line items wholesale; the snapshot is authoritative
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = ?`, s.ID); err != nil {
		return fmt.Errorf("failed to clear sale items: %w", err)
	}
	return r.insertItems(ctx, s)
}

func (r *SQLiteRepository) insertItems(ctx context.Context, s *models.Sale) error {
	query := `INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, item := range s.Items {
		_, err := r.db.ExecContext(ctx, query,
			item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice,
			item.Total, item.CreatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to insert sale item: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s := &models.Sale{}
	var method string
	var saleDate, createdAt, updatedAt int64
	err := row.Scan(&s.ID, &s.ShopID, &s.CustomerID, &s.Subtotal, &s.Tax, &s.Discount,
		&s.Total, &method, &s.Notes, &saleDate, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sale %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select sale: %w", err)
	}
	s.PaymentMethod = models.PaymentMethod(method)
	s.SaleDate = time.UnixMilli(saleDate).UTC()
	s.CreatedAt = time.UnixMilli(createdAt).UTC()
	s.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	items, err := r.itemsBySale(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return s, nil
}

func (r *SQLiteRepository) itemsBySale(ctx context.Context, saleID string) ([]models.SaleItem, error) {
	query := `SELECT id, sale_id, product_id, quantity, unit_price, total, created_at
		FROM sale_items WHERE sale_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to select sale items: %w", err)
	}
	defer rows.Close()

	var items []models.SaleItem
	for rows.Next() {
		var item models.SaleItem
		var createdAt int64
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.Total, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale item: %w", err)
		}
		item.CreatedAt = time.UnixMilli(createdAt).UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sale items: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) List(ctx context.Context, shopID string) ([]models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE shop_id = ? ORDER BY sale_date DESC`
	rows, err := r.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to select sales: %w", err)
	}
	defer rows.Close()

	var result []models.Sale
	for rows.Next() {
		s := models.Sale{}
		var method string
		var saleDate, createdAt, updatedAt int64
		if err := rows.Scan(&s.ID, &s.ShopID, &s.CustomerID, &s.Subtotal, &s.Tax,
			&s.Discount, &s.Total, &method, &s.Notes, &saleDate, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		s.PaymentMethod = models.PaymentMethod(method)
		s.SaleDate = time.UnixMilli(saleDate).UTC()
		s.CreatedAt = time.UnixMilli(createdAt).UTC()
		s.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete sale items: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("sale %s: %w", id, common.ErrNotFound)
	}
	return nil
}
