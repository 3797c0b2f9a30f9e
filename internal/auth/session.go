package auth

import (
	"context"
	"sync"
	"time"

	"github.com/tinashem/dukabook/internal/models"
)

// Session is the derived, non-persistent authenticated view. It exists only
// between a successful verification and logout/reset/process exit.
type Session struct {
	Principal       *models.User
	AuthenticatedAt time.Time
}

// SessionCache holds at most one Session for the process lifetime. It never
// verifies anything itself: a miss is answered from the manager's live
// session state, which only the five manager operations can change. There
// is no TTL; staleness is bounded by explicit mutations.
type SessionCache struct {
	mu      sync.Mutex
	mgr     *Manager
	session *Session
}

// NewSessionCache builds a cache over the given manager.
func NewSessionCache(mgr *Manager) *SessionCache {
	return &SessionCache{mgr: mgr}
}

// Get returns the cached session, re-deriving it from the manager when
// empty. Returns nil when no verification has succeeded in this process.
func (c *SessionCache) Get(ctx context.Context) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return c.session
	}
	c.session = c.mgr.Session()
	return c.session
}

// Invalidate clears the cached session. Call after logout or reset.
func (c *SessionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}
