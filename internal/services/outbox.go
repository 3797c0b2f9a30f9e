// Package services implements the application operations of the bookkeeping
// client. Every service method that mutates a business record also appends a
// shadow entry to the sync queue inside the same transaction, so a record
// change and its pending transmission either both commit or both roll back.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tinashem/dukabook/internal/dbx"
	"github.com/tinashem/dukabook/internal/models"
	"github.com/tinashem/dukabook/internal/repositories/outbox"
)

// enqueue appends a sync-queue entry on the same transactional handle the
// business write used. Callers must pass the tx from dbx.WithTx, never the
// raw database handle.
func enqueue(ctx context.Context, tx dbx.DBTX, tableName, recordID string, action models.Action, snapshot any, now time.Time) error {
	e, err := models.NewOutboxEntry(tableName, recordID, action, snapshot, now)
	if err != nil {
		return err
	}
	if err := outbox.NewSQLiteRepository(tx).Insert(ctx, e); err != nil {
		return fmt.Errorf("failed to enqueue %s %s: %w", action, tableName, err)
	}
	return nil
}

// OutboxService exposes the sync queue to the synchronizer: reading the
// oldest pending entries, acknowledging transmitted ones and recording
// failures. Enqueueing happens inside the business services.
type OutboxService interface {
	// Drain returns up to limit pending entries oldest-first without
	// removing them. Draining is idempotent until Acknowledge is called.
	Drain(ctx context.Context, limit int) ([]models.OutboxEntry, error)

	// Acknowledge removes a transmitted entry permanently.
	Acknowledge(ctx context.Context, id int64) error

	// Fail records a failed transmission attempt; the entry stays queued.
	Fail(ctx context.Context, id int64) error

	// Superseded reports whether a later pending delete exists for the same
	// record, making transmission of e pointless.
	Superseded(ctx context.Context, e *models.OutboxEntry) (bool, error)

	// Pending returns the number of queued entries.
	Pending(ctx context.Context) (int, error)
}

type outboxService struct {
	repo outbox.Repository
}

func NewOutboxService(repo outbox.Repository) OutboxService {
	return &outboxService{repo: repo}
}

func (s *outboxService) Drain(ctx context.Context, limit int) ([]models.OutboxEntry, error) {
	entries, err := s.repo.Oldest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync queue: %w", err)
	}
	for _, e := range entries {
		if !e.Action.Valid() {
			return nil, fmt.Errorf("sync queue entry %d has invalid action %q", e.ID, e.Action)
		}
	}
	return entries, nil
}

func (s *outboxService) Acknowledge(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to acknowledge sync queue entry %d: %w", id, err)
	}
	return nil
}

func (s *outboxService) Fail(ctx context.Context, id int64) error {
	if err := s.repo.IncrementRetry(ctx, id); err != nil {
		return fmt.Errorf("failed to record retry for sync queue entry %d: %w", id, err)
	}
	return nil
}

func (s *outboxService) Superseded(ctx context.Context, e *models.OutboxEntry) (bool, error) {
	if e.Action == models.ActionDelete {
		return false, nil
	}
	ok, err := s.repo.HasLaterDelete(ctx, e.TableName, e.RecordID, e.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check sync queue entry %d: %w", e.ID, err)
	}
	return ok, nil
}

func (s *outboxService) Pending(ctx context.Context) (int, error) {
	n, err := s.repo.CountPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count sync queue: %w", err)
	}
	return n, nil
}
