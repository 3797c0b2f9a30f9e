package syncx

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinashem/dukabook/internal/logging"
	"github.com/tinashem/dukabook/internal/models"
	"github.com/tinashem/dukabook/internal/repositories/outbox"
	"github.com/tinashem/dukabook/internal/services"
	"github.com/tinashem/dukabook/internal/storage"
)

// fakeRemote scripts per-record push results.
type fakeRemote struct {
	conflicts map[string]*RemoteRecord // recordID -> remote version
	failWith  error
	pushes    []pushedEntry
}

type pushedEntry struct {
	RecordID string
	Action   models.Action
	Force    bool
}

func (f *fakeRemote) Push(ctx context.Context, e *models.OutboxEntry, force bool) (*PushResult, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.pushes = append(f.pushes, pushedEntry{RecordID: e.RecordID, Action: e.Action, Force: force})
	if remote, ok := f.conflicts[e.RecordID]; ok && !force {
		return &PushResult{Status: PushConflict, Remote: remote}, nil
	}
	return &PushResult{Status: PushAccepted}, nil
}

type syncFixture struct {
	db        *sql.DB
	remote    *fakeRemote
	sync      *Synchronizer
	products  services.ProductService
	outboxSvc services.OutboxService
	premium   *models.User
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	remote := &fakeRemote{conflicts: map[string]*RemoteRecord{}}
	outboxSvc := services.NewOutboxService(outbox.NewSQLiteRepository(db))
	log := logging.NewTextLogger(io.Discard, slog.LevelError)

	return &syncFixture{
		db:        db,
		remote:    remote,
		sync:      NewSynchronizer(outboxSvc, remote, services.NewRemoteApplier(db), log, 10),
		products:  services.NewProductService(db),
		outboxSvc: outboxSvc,
		premium:   &models.User{ID: "u-1", IsPremium: true},
	}
}

func (f *syncFixture) seedProduct(t *testing.T, name string) *models.Product {
	t.Helper()
	p := &models.Product{ShopID: "shop-1", Name: name, SellingPrice: 100, Stock: 10}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func TestRunOnce_PushesAndAcknowledges(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "Sugar 1kg")
	f.seedProduct(t, "Tea leaves")

	report, err := f.sync.RunOnce(ctx, f.premium)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Pushed)
	assert.Zero(t, report.Remaining)

	// second run finds an empty queue and pushes nothing
	report, err = f.sync.RunOnce(ctx, f.premium)
	require.NoError(t, err)
	assert.Zero(t, report.Pushed)
	assert.Len(t, f.remote.pushes, 2)
}

func TestRunOnce_RequiresPremium(t *testing.T) {
	f := newSyncFixture(t)

	_, err := f.sync.RunOnce(context.Background(), &models.User{ID: "u-1"})
	assert.ErrorIs(t, err, ErrPremiumRequired)

	_, err = f.sync.RunOnce(context.Background(), nil)
	assert.ErrorIs(t, err, ErrPremiumRequired)
}

func TestRunOnce_TransportFailureLeavesQueueIntact(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "Sugar 1kg")
	f.remote.failWith = errors.New("connection refused")

	report, err := f.sync.RunOnce(ctx, f.premium)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Remaining, "unpushed entries stay queued")

	entries, err := f.outboxSvc.Drain(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].RetryCount)

	// a later run retries and succeeds
	f.remote.failWith = nil
	report, err = f.sync.RunOnce(ctx, f.premium)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pushed)
	assert.Zero(t, report.Remaining)
}

func TestRunOnce_SkipsEntriesSupersededByDelete(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Sugar 1kg")
	require.NoError(t, f.products.Delete(ctx, p.ID))

	report, err := f.sync.RunOnce(ctx, f.premium)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped, "the create entry is dropped")
	assert.Equal(t, 1, report.Pushed, "only the delete is transmitted")

	require.Len(t, f.remote.pushes, 1)
	assert.Equal(t, models.ActionDelete, f.remote.pushes[0].Action)
}

func TestRunOnce_ConflictRemoteWins(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Sugar 1kg")

	remoteVersion := *p
	remoteVersion.Name = "Sugar 1kg (remote)"
	remoteVersion.UpdatedAt = p.UpdatedAt.Add(time.Hour)
	payload, err := json.Marshal(remoteVersion)
	require.NoError(t, err)
	f.remote.conflicts[p.ID] = &RemoteRecord{UpdatedAt: remoteVersion.UpdatedAt, Payload: payload}

	report, err := f.sync.RunOnce(ctx, f.premium)
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, ConflictUpdateUpdate, report.Conflicts[0].Type)
	assert.Zero(t, report.Remaining)

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sugar 1kg (remote)", got.Name, "remote-winning version applied locally")

	// applying the remote version must not enqueue a new mutation
	n, err := f.outboxSvc.Pending(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunOnce_ConflictLocalWins(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Sugar 1kg")

	stale := *p
	stale.UpdatedAt = p.UpdatedAt.Add(-time.Hour)
	payload, err := json.Marshal(stale)
	require.NoError(t, err)
	f.remote.conflicts[p.ID] = &RemoteRecord{UpdatedAt: stale.UpdatedAt, Payload: payload}

	report, err := f.sync.RunOnce(ctx, f.premium)
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)
	assert.Zero(t, report.Remaining)

	require.Len(t, f.remote.pushes, 2, "rejected push followed by a forced one")
	assert.False(t, f.remote.pushes[0].Force)
	assert.True(t, f.remote.pushes[1].Force)

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sugar 1kg", got.Name, "local version untouched")
}

func TestRunOnce_ConflictRemoteDeleted(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Sugar 1kg")
	f.remote.conflicts[p.ID] = &RemoteRecord{Deleted: true}

	report, err := f.sync.RunOnce(ctx, f.premium)
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, ConflictUpdateDelete, report.Conflicts[0].Type)

	_, err = f.products.Get(ctx, p.ID)
	assert.Error(t, err, "deleted everywhere")
}

func TestRunOnce_CancelledBetweenEntries(t *testing.T) {
	f := newSyncFixture(t)
	f.seedProduct(t, "Sugar 1kg")
	f.seedProduct(t, "Tea leaves")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.sync.RunOnce(ctx, f.premium)
	require.NoError(t, err)
	assert.Zero(t, report.Pushed)
	assert.Equal(t, 2, report.Remaining, "cancellation leaves the queue untouched")
}
