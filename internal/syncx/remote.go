package syncx

import (
	"context"
	"errors"

	"github.com/tinashem/dukabook/internal/models"
)

var (
	// ErrPremiumRequired is returned when a non-premium principal starts a sync.
	ErrPremiumRequired = errors.New("sync requires a premium account")

	// ErrTokenExpired is returned before any network call when the access
	// token's expiry has already passed.
	ErrTokenExpired = errors.New("access token expired")

	// ErrUnauthorized is returned when the remote rejects the token.
	ErrUnauthorized = errors.New("unauthorized")
)

// PushStatus is the remote's verdict on a pushed mutation.
type PushStatus int

const (
	// PushAccepted: the remote stored the mutation.
	PushAccepted PushStatus = iota

	// PushConflict: the remote holds a newer or deleted version; the push
	// was rejected and the remote version is attached.
	PushConflict
)

// PushResult carries the verdict and, on conflict, the remote's version.
type PushResult struct {
	Status PushStatus
	Remote *RemoteRecord
}

// Remote transmits pending mutations to the remote store.
type Remote interface {
	// Push sends one queued mutation. force overrides the remote's version
	// check; it is set when a conflict was resolved in the local side's
	// favor. A transport failure is returned as an error; a version
	// conflict is a normal result, not an error.
	Push(ctx context.Context, e *models.OutboxEntry, force bool) (*PushResult, error)
}
