// Package secrets provides device-local, encrypted-at-rest key/value
// persistence for credential material. Blobs stored here survive process
// restarts, live outside the relational database, and are never synced
// off-device.
package secrets

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no blob exists under the given name.
var ErrNotFound = errors.New("secret not found")

// Store is the capability interface consumed by the credential manager.
// Implementations must make Put atomic: a crash mid-write may lose the new
// value but must never leave a corrupted one.
type Store interface {
	// Put stores blob under name, replacing any previous value.
	Put(ctx context.Context, name string, blob []byte) error

	// Get returns the blob stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes the blob stored under name. Deleting a missing name
	// is not an error.
	Delete(ctx context.Context, name string) error
}
