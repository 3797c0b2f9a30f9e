package customers

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

const customerColumns = `id, shop_id, name, email, phone, address, is_active, created_at, updated_at`

func customerArgs(c *models.Customer) []any {
	return []any{
		c.ID, c.ShopID, c.Name, c.Email, c.Phone, c.Address,
		c.IsActive, c.CreatedAt.UnixMilli(), c.UpdatedAt.UnixMilli(),
	}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *models.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, customerArgs(c)...); err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, c *models.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			shop_id = excluded.shop_id,
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			address = excluded.address,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, customerArgs(c)...); err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select customer: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) List(ctx context.Context, shopID string) ([]models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE shop_id = ? AND is_active = 1 ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to select customers: %w", err)
	}
	defer rows.Close()

	var result []models.Customer
	for rows.Next() {
		c := models.Customer{}
		var createdAt, updatedAt int64
		if err := rows.Scan(&c.ID, &c.ShopID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		c.CreatedAt = time.UnixMilli(createdAt).UTC()
		c.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, c *models.Customer) error {
	query := `UPDATE customers SET name = ?, email = ?, phone = ?, address = ?,
		is_active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Address, c.IsActive, c.UpdatedAt.UnixMilli(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return requireOneRow(res, c.ID)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return requireOneRow(res, id)
}

func requireOneRow(res sql.Result, id string) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("customer %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanCustomer(row *sql.Row) (*models.Customer, error) {
	c := &models.Customer{}
	var createdAt, updatedAt int64
	err := row.Scan(&c.ID, &c.ShopID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = time.UnixMilli(createdAt).UTC()
	c.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return c, nil
}
