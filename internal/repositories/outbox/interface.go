// Package outbox persists the sync queue: the ordered, durable,
// at-least-once log of pending mutations awaiting transmission.
package outbox

import (
	"context"

	"github.com/tinashem/dukabook/internal/models"
)

// Repository describes persistence operations for outbox entries.
//
// Insert must run inside the same transaction as the business-record write
// it shadows: construct the repository over the transactional DBTX handle.
type Repository interface {
	// Insert appends an entry and assigns its id.
	Insert(ctx context.Context, e *models.OutboxEntry) error

	// Oldest returns up to limit entries ordered oldest-first. Entries are
	// not removed; repeated calls return the same entries until they are
	// acknowledged.
	Oldest(ctx context.Context, limit int) ([]models.OutboxEntry, error)

	// DeleteByID removes an acknowledged entry.
	DeleteByID(ctx context.Context, id int64) error

	// IncrementRetry bumps retry_count after a failed transmission.
	IncrementRetry(ctx context.Context, id int64) error

	// HasLaterDelete reports whether a pending delete entry exists for the
	// same (tableName, recordID) with an id greater than afterID. Such a
	// delete logically supersedes the earlier entry.
	HasLaterDelete(ctx context.Context, tableName, recordID string, afterID int64) (bool, error)

	// CountPending returns the number of entries still queued.
	CountPending(ctx context.Context) (int, error)
}
