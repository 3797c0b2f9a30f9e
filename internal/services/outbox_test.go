package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinashem/dukabook/internal/repositories/outbox"
)

func TestOutboxService_DrainAcknowledgeFail(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, 10)
	svc := NewOutboxService(outbox.NewSQLiteRepository(db))
	ctx := context.Background()

	entries, err := svc.Drain(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// draining again returns the same entry until acknowledged
	again, err := svc.Drain(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, entries[0].ID, again[0].ID)

	require.NoError(t, svc.Fail(ctx, entries[0].ID))
	retried, err := svc.Drain(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, retried[0].RetryCount)

	require.NoError(t, svc.Acknowledge(ctx, entries[0].ID))
	empty, err := svc.Drain(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	n, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOutboxService_Superseded(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 10)
	productSvc := NewProductService(db)
	ctx := context.Background()

	p.SellingPrice = 300
	require.NoError(t, productSvc.Update(ctx, p))
	require.NoError(t, productSvc.Delete(ctx, p.ID))

	svc := NewOutboxService(outbox.NewSQLiteRepository(db))
	entries, err := svc.Drain(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	create, update, del := entries[0], entries[1], entries[2]

	ok, err := svc.Superseded(ctx, &create)
	require.NoError(t, err)
	assert.True(t, ok, "create superseded by the later delete")

	ok, err = svc.Superseded(ctx, &update)
	require.NoError(t, err)
	assert.True(t, ok, "update superseded by the later delete")

	ok, err = svc.Superseded(ctx, &del)
	require.NoError(t, err)
	assert.False(t, ok, "the delete itself still has to be transmitted")
}
