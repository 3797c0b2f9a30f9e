// Package shops persists shop records.
package shops

import (
	"context"

	"github.com/tinashem/dukabook/internal/models"
)

// Repository describes persistence operations for Shop records.
type Repository interface {
	// Create inserts a new shop.
	Create(ctx context.Context, s *models.Shop) error

	// Upsert inserts or fully replaces a shop by id.
	Upsert(ctx context.Context, s *models.Shop) error

	// GetByID returns a shop by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Shop, error)

	// GetPrimary returns the primary shop of a user, or common.ErrNotFound.
	GetPrimary(ctx context.Context, userID string) (*models.Shop, error)

	// Delete removes a shop row.
	Delete(ctx context.Context, id string) error
}
