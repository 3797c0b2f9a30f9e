// Package expenses persists expense records.
package expenses

import (
	"context"

	"github.com/tinashem/dukabook/internal/models"
)

// Repository describes persistence operations for Expense records.
type Repository interface {
	// Create inserts a new expense.
	Create(ctx context.Context, e *models.Expense) error

	// Upsert inserts or fully replaces an expense by id.
	Upsert(ctx context.Context, e *models.Expense) error

	// GetByID returns an expense by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Expense, error)

	// List returns all expenses for a shop, newest expense date first.
	List(ctx context.Context, shopID string) ([]models.Expense, error)

	// Update rewrites the mutable fields of an existing expense.
	Update(ctx context.Context, e *models.Expense) error

	// Delete removes an expense row.
	Delete(ctx context.Context, id string) error
}
