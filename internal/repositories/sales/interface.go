// Package sales persists sale records and their line items.
package sales

import (
	"context"

	"github.com/tinashem/dukabook/internal/models"
)

// Repository describes persistence operations for Sale records.
type Repository interface {
	// Create inserts a sale together with its line items.
	Create(ctx context.Context, s *models.Sale) error

	// Upsert inserts or fully replaces a sale (and its items) by id.
	Upsert(ctx context.Context, s *models.Sale) error

	// GetByID returns a sale with its items, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Sale, error)

	// List returns all sales for a shop, newest sale date first, without items.
	List(ctx context.Context, shopID string) ([]models.Sale, error)

	// Delete removes a sale and its items.
	Delete(ctx context.Context, id string) error
}
