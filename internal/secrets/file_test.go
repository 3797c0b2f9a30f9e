package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "secrets.bin"), filepath.Join(dir, "device.key"))
	require.NoError(t, err)
	return store, dir
}

func TestFileStore_PutGetDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "local_auth")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "local_auth", []byte(`{"a":1}`)))
	got, err := store.Get(ctx, "local_auth")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	require.NoError(t, store.Delete(ctx, "local_auth"))
	_, err = store.Get(ctx, "local_auth")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting a missing name is not an error
	assert.NoError(t, store.Delete(ctx, "local_auth"))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secrets.bin")
	keyPath := filepath.Join(dir, "device.key")
	ctx := context.Background()

	store, err := NewFileStore(path, keyPath)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "local_auth", []byte("blob")))

	// new store instance simulates a process restart
	reopened, err := NewFileStore(path, keyPath)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "local_auth")
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), got)
}

func TestFileStore_EncryptedAtRest(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "local_auth", []byte("plaintext-credential")))

	raw, err := os.ReadFile(filepath.Join(dir, "secrets.bin"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "plaintext-credential")
	assert.NotContains(t, string(raw), "local_auth")
}

func TestFileStore_WrongDeviceKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secrets.bin")
	ctx := context.Background()

	store, err := NewFileStore(path, filepath.Join(dir, "key1"))
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "local_auth", []byte("blob")))

	// a store opened with a different device key must refuse to decrypt
	other, err := NewFileStore(path, filepath.Join(dir, "key2"))
	require.NoError(t, err)
	_, err = other.Get(ctx, "local_auth")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStore_DeviceKeyPermissions(t *testing.T) {
	_, dir := newTestStore(t)

	info, err := os.Stat(filepath.Join(dir, "device.key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
