package auth

import "errors"

// Structured error kinds returned by the credential manager. Callers match
// them with errors.Is; human-readable presentation is the UI's concern.
var (
	// ErrAlreadySetUp is returned by Setup when a local credential exists.
	ErrAlreadySetUp = errors.New("local credential already set up")

	// ErrNotSetUp is returned when an operation requires a local credential
	// and none exists.
	ErrNotSetUp = errors.New("local credential not set up")

	// ErrWeakPassword is returned by Setup when the password fails the
	// minimum-length policy.
	ErrWeakPassword = errors.New("password does not meet minimum length")

	// ErrInvalidCredential is returned by VerifyPassword on a mismatch.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrBiometricUnavailable means no biometric hardware or enrollment.
	ErrBiometricUnavailable = errors.New("biometric authentication unavailable")

	// ErrBiometricDisabled means the credential has biometrics switched off.
	ErrBiometricDisabled = errors.New("biometric authentication disabled")

	// ErrBiometricFailed means the single biometric challenge was rejected
	// or cancelled.
	ErrBiometricFailed = errors.New("biometric authentication failed")

	// ErrStorage wraps adapter-level I/O failures. Always surfaced, never
	// swallowed.
	ErrStorage = errors.New("storage failure")
)
