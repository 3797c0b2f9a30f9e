package auth

import (
	"time"

	"github.com/tinashem/dukabook/internal/models"
)

// StateKind enumerates the credential/session states of a device.
type StateKind int

const (
	// StateUnset: no local credential exists; only Setup is permitted.
	StateUnset StateKind = iota

	// StateSet: a credential exists but no verification has happened in
	// this process; verification (password or biometric) is required.
	StateSet

	// StateAuthenticated: a verification succeeded in this process and a
	// session is live.
	StateAuthenticated
)

func (k StateKind) String() string {
	switch k {
	case StateUnset:
		return "unset"
	case StateSet:
		return "set"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is an explicit descriptor of the manager's current position in the
// credential lifecycle. Only the manager operations transition it; there is
// no ambient mutable singleton behind it.
type State struct {
	Kind            StateKind
	Principal       *models.User // non-nil for StateAuthenticated
	AuthenticatedAt time.Time    // zero unless StateAuthenticated
}
