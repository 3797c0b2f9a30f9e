// Package customers persists customer records.
package customers

import (
	"context"

	"github.com/tinashem/dukabook/internal/models"
)

// Repository describes persistence operations for Customer records.
type Repository interface {
	// Create inserts a new customer.
	Create(ctx context.Context, c *models.Customer) error

	// Upsert inserts or fully replaces a customer by id.
	Upsert(ctx context.Context, c *models.Customer) error

	// GetByID returns a customer by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Customer, error)

	// List returns all active customers for a shop, newest first.
	List(ctx context.Context, shopID string) ([]models.Customer, error)

	// Update rewrites the mutable fields of an existing customer.
	Update(ctx context.Context, c *models.Customer) error

	// Delete removes a customer row.
	Delete(ctx context.Context, id string) error
}
