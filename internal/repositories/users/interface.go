// Package users persists the principal (User) records.
package users

import (
	"context"

	"github.com/tinashem/dukabook/internal/models"
)

// Repository describes persistence operations for User records.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *models.User) error

	// GetByID returns a user by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Update rewrites the mutable fields of an existing user.
	Update(ctx context.Context, u *models.User) error
}
