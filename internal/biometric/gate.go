// Package biometric defines the biometric hardware capability consumed by
// the credential manager. The gate only reports availability and performs a
// single present/consume challenge; retries and policy live with the caller.
package biometric

import "context"

// Gate is the adapter interface over platform biometric hardware.
type Gate interface {
	// Available reports whether biometric hardware exists and at least one
	// identity is enrolled.
	Available(ctx context.Context) bool

	// Challenge presents a single biometric prompt and reports whether the
	// user passed it. A cancelled or rejected prompt returns false, nil;
	// errors are reserved for adapter-level failures.
	Challenge(ctx context.Context, prompt string) (bool, error)
}

// UnavailableGate is the production gate on platforms without biometric
// hardware support. It never passes a challenge.
type UnavailableGate struct{}

func (UnavailableGate) Available(ctx context.Context) bool { return false }

func (UnavailableGate) Challenge(ctx context.Context, prompt string) (bool, error) {
	return false, nil
}

// StaticGate is a scripted gate for tests: availability and the challenge
// outcome are fixed up front.
type StaticGate struct {
	HasHardware  bool
	ChallengeOK  bool
	ChallengeErr error

	// Challenges counts how many times Challenge was invoked.
	Challenges int
}

func (g *StaticGate) Available(ctx context.Context) bool { return g.HasHardware }

func (g *StaticGate) Challenge(ctx context.Context, prompt string) (bool, error) {
	g.Challenges++
	if g.ChallengeErr != nil {
		return false, g.ChallengeErr
	}
	return g.ChallengeOK, nil
}
