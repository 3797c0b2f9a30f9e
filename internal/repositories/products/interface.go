// Package products persists inventory records.
package products

import (
	"context"

	"github.com/tinashem/dukabook/internal/models"
)

// Repository describes persistence operations for Product records.
type Repository interface {
	// Create inserts a new product.
	Create(ctx context.Context, p *models.Product) error

	// Upsert inserts or fully replaces a product by id. Used when a
	// remote-winning version is applied locally.
	Upsert(ctx context.Context, p *models.Product) error

	// GetByID returns a product by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// List returns all active products for a shop, newest first.
	List(ctx context.Context, shopID string) ([]models.Product, error)

	// Update rewrites the mutable fields of an existing product.
	Update(ctx context.Context, p *models.Product) error

	// Delete removes a product row.
	Delete(ctx context.Context, id string) error

	// AddStock adjusts the stock level by delta (negative for a sale).
	AddStock(ctx context.Context, id string, delta float64, updatedAt int64) error
}
