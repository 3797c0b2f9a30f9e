package expenses

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

const expenseColumns = `id, shop_id, category, amount, description, expense_date,
	is_recurring, recurring_period, created_at, updated_at`

func expenseArgs(e *models.Expense) []any {
	return []any{
		e.ID, e.ShopID, e.Category, e.Amount, e.Description, e.ExpenseDate.UnixMilli(),
		e.IsRecurring, e.RecurringPeriod, e.CreatedAt.UnixMilli(), e.UpdatedAt.UnixMilli(),
	}
}

func (r *SQLiteRepository) Create(ctx context.Context, e *models.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, expenseArgs(e)...); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, e *models.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			shop_id = excluded.shop_id,
			category = excluded.category,
			amount = excluded.amount,
			description = excluded.description,
			expense_date = excluded.expense_date,
			is_recurring = excluded.is_recurring,
			recurring_period = excluded.recurring_period,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, expenseArgs(e)...); err != nil {
		return fmt.Errorf("failed to upsert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ?`
	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) List(ctx context.Context, shopID string) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE shop_id = ? ORDER BY expense_date DESC`
	rows, err := r.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	defer rows.Close()

	var result []models.Expense
	for rows.Next() {
		e := models.Expense{}
		var expenseDate, createdAt, updatedAt int64
		if err := rows.Scan(&e.ID, &e.ShopID, &e.Category, &e.Amount, &e.Description,
			&expenseDate, &e.IsRecurring, &e.RecurringPeriod, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.ExpenseDate = time.UnixMilli(expenseDate).UTC()
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		e.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *models.Expense) error {
	query := `UPDATE expenses SET category = ?, amount = ?, description = ?, expense_date = ?,
		is_recurring = ?, recurring_period = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Category, e.Amount, e.Description, e.ExpenseDate.UnixMilli(),
		e.IsRecurring, e.RecurringPeriod, e.UpdatedAt.UnixMilli(), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return requireOneRow(res, e.ID)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireOneRow(res, id)
}

func requireOneRow(res sql.Result, id string) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanExpense(row *sql.Row) (*models.Expense, error) {
	e := &models.Expense{}
	var expenseDate, createdAt, updatedAt int64
	err := row.Scan(&e.ID, &e.ShopID, &e.Category, &e.Amount, &e.Description,
		&expenseDate, &e.IsRecurring, &e.RecurringPeriod, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	e.ExpenseDate = time.UnixMilli(expenseDate).UTC()
	e.CreatedAt = time.UnixMilli(createdAt).UTC()
	e.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return e, nil
}
