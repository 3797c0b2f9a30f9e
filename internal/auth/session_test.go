package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCache_GetAfterSetup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cache := NewSessionCache(f.mgr)

	p, err := f.mgr.Setup(ctx, "Amara", "secret1", false)
	require.NoError(t, err)

	sess := cache.Get(ctx)
	require.NotNil(t, sess)
	assert.Equal(t, p.ID, sess.Principal.ID)

	// the cached copy is served without touching the manager again
	assert.Same(t, sess, cache.Get(ctx))
}

func TestSessionCache_NilWhenUnauthenticated(t *testing.T) {
	f := newFixture(t)
	cache := NewSessionCache(f.mgr)

	assert.Nil(t, cache.Get(context.Background()), "no session before any verification")
}

func TestSessionCache_InvalidateOnLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cache := NewSessionCache(f.mgr)

	_, err := f.mgr.Setup(ctx, "Amara", "secret1", false)
	require.NoError(t, err)
	require.NotNil(t, cache.Get(ctx))

	f.mgr.Logout()
	cache.Invalidate()

	assert.Nil(t, cache.Get(ctx), "logout closes the session; re-verification required")

	_, err = f.mgr.VerifyPassword(ctx, "secret1")
	require.NoError(t, err)

	assert.NotNil(t, cache.Get(ctx), "cache re-derives after a fresh verification")
}
