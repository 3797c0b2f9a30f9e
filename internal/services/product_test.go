package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinashem/dukabook/internal/common"
	"github.com/tinashem/dukabook/internal/models"
)

func TestProductCreate_PairsOutboxEntry(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 10)

	entries := pendingEntries(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, models.TableProducts, entries[0].TableName)
	assert.Equal(t, p.ID, entries[0].RecordID)
	assert.Equal(t, models.ActionCreate, entries[0].Action)

	var snapshot models.Product
	require.NoError(t, json.Unmarshal(entries[0].Payload, &snapshot))
	assert.Equal(t, p.Name, snapshot.Name, "payload is a full record snapshot")
	assert.Equal(t, p.Stock, snapshot.Stock)
}

func TestProductCreate_ValidationLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	err := svc.Create(context.Background(), &models.Product{ShopID: "shop-1", Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, pendingEntries(t, db))
}

func TestProductUpdate_FailedWriteRollsBackOutbox(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	// update of a record that does not exist fails inside the transaction
	err := svc.Update(context.Background(), &models.Product{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.Empty(t, pendingEntries(t, db), "no sync queue entry without a committed write")
}

func TestProductDelete_EnqueuesDelete(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 5)
	svc := NewProductService(db)

	require.NoError(t, svc.Delete(context.Background(), p.ID))

	_, err := svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	entries := pendingEntries(t, db)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionDelete, entries[1].Action)
	assert.Equal(t, p.ID, entries[1].RecordID)
}

func TestProductUpdate_EnqueuesFreshSnapshot(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, 5)
	svc := NewProductService(db)

	p.SellingPrice = 300
	require.NoError(t, svc.Update(context.Background(), p))

	entries := pendingEntries(t, db)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionUpdate, entries[1].Action)

	var snapshot models.Product
	require.NoError(t, json.Unmarshal(entries[1].Payload, &snapshot))
	assert.Equal(t, 300.0, snapshot.SellingPrice)
	assert.True(t, snapshot.UpdatedAt.After(snapshot.CreatedAt) || snapshot.UpdatedAt.Equal(snapshot.CreatedAt))
}
