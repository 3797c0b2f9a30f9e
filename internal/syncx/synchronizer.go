package syncx

import (
	"context"
	"fmt"

	"github.com/tinashem/dukabook/internal/logging"
	"github.com/tinashem/dukabook/internal/models"
	"github.com/tinashem/dukabook/internal/services"
)

// DefaultBatchSize bounds how many queue entries one RunOnce drains.
const DefaultBatchSize = 50

// Report summarizes one synchronization run.
type Report struct {
	Pushed    int
	Skipped   int
	Failed    int
	Conflicts []ConflictRecord
	Remaining int
}

// Synchronizer drains the sync queue and pushes each entry to the remote
// store. Conflicts are resolved on the spot; everything else is acknowledged
// or left queued for the next run.
type Synchronizer struct {
	outbox    services.OutboxService
	remote    Remote
	applier   services.RemoteApplier
	resolver  Resolver
	log       logging.Logger
	batchSize int
}

func NewSynchronizer(outbox services.OutboxService, remote Remote, applier services.RemoteApplier, log logging.Logger, batchSize int) *Synchronizer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Synchronizer{
		outbox:    outbox,
		remote:    remote,
		applier:   applier,
		log:       log.With("component", "synchronizer"),
		batchSize: batchSize,
	}
}

// RunOnce drains up to one batch and pushes it. The run stops early on
// context cancellation or a transport failure; unacknowledged entries stay
// queued and the next run picks them up, so stopping at any point is safe.
func (s *Synchronizer) RunOnce(ctx context.Context, principal *models.User) (*Report, error) {
	if principal == nil || !principal.IsPremium {
		return nil, ErrPremiumRequired
	}

	// queue reads are local and cheap; cancellation applies to the pushes,
	// not to the accounting around them
	local := context.WithoutCancel(ctx)

	entries, err := s.outbox.Drain(local, s.batchSize)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for i := range entries {
		if err := ctx.Err(); err != nil {
			break
		}
		e := &entries[i]

		superseded, err := s.outbox.Superseded(local, e)
		if err != nil {
			return report, err
		}
		if superseded {
			// a later pending delete makes this entry pointless
			if err := s.outbox.Acknowledge(local, e.ID); err != nil {
				return report, err
			}
			report.Skipped++
			continue
		}

		if err := s.pushEntry(ctx, e, report); err != nil {
			// transport failure: the rest of the batch would fail too
			s.log.Warn(ctx, "sync run stopped", "error", err, "entry", e.ID)
			if ferr := s.outbox.Fail(local, e.ID); ferr != nil {
				return report, ferr
			}
			report.Failed++
			break
		}
	}

	report.Remaining, err = s.outbox.Pending(local)
	if err != nil {
		return report, err
	}

	s.log.Info(ctx, "sync run finished",
		"pushed", report.Pushed, "skipped", report.Skipped,
		"failed", report.Failed, "conflicts", len(report.Conflicts),
		"remaining", report.Remaining)
	return report, nil
}

func (s *Synchronizer) pushEntry(ctx context.Context, e *models.OutboxEntry, report *Report) error {
	result, err := s.remote.Push(ctx, e, false)
	if err != nil {
		return err
	}

	if result.Status == PushAccepted {
		if err := s.outbox.Acknowledge(context.WithoutCancel(ctx), e.ID); err != nil {
			return err
		}
		report.Pushed++
		return nil
	}

	if result.Remote == nil {
		return fmt.Errorf("conflict response for entry %d carried no remote version", e.ID)
	}
	return s.resolveConflict(ctx, e, result.Remote, report)
}

func (s *Synchronizer) resolveConflict(ctx context.Context, e *models.OutboxEntry, remote *RemoteRecord, report *Report) error {
	outcome, rec, err := s.resolver.Resolve(e, remote)
	if err != nil {
		return err
	}
	report.Conflicts = append(report.Conflicts, *rec)

	s.log.Info(ctx, "conflict resolved",
		"table", e.TableName, "record", e.RecordID,
		"type", rec.Type, "outcome", outcome.String())

	switch outcome {
	case OutcomeKeepLocal:
		forced, err := s.remote.Push(ctx, e, true)
		if err != nil {
			return err
		}
		if forced.Status != PushAccepted {
			return fmt.Errorf("forced push of entry %d rejected again", e.ID)
		}

	case OutcomeApplyRemote:
		if err := s.applier.Upsert(ctx, e.TableName, remote.Payload); err != nil {
			return fmt.Errorf("failed to apply remote version of %s/%s: %w", e.TableName, e.RecordID, err)
		}

	case OutcomeDeleteLocal:
		if err := s.applier.Delete(ctx, e.TableName, e.RecordID); err != nil {
			return fmt.Errorf("failed to apply remote delete of %s/%s: %w", e.TableName, e.RecordID, err)
		}
	}

	if err := s.outbox.Acknowledge(context.WithoutCancel(ctx), e.ID); err != nil {
		return err
	}
	report.Pushed++
	return nil
}
