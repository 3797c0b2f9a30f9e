// Package auth implements the credential lifecycle of a dukabook device:
// setup, password and biometric verification, rotation of the biometric
// flag, and destructive reset. One local credential exists per device at
// most; it lives in the secret store and references a durable User row by
// id.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tinashem/dukabook/internal/biometric"
	"github.com/tinashem/dukabook/internal/cryptox"
	"github.com/tinashem/dukabook/internal/models"
	"github.com/tinashem/dukabook/internal/repositories/users"
	"github.com/tinashem/dukabook/internal/secrets"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// BiometricPrompt is shown by the gate on a biometric challenge.
const BiometricPrompt = "Authenticate to access your shop data"

// Manager owns the local credential. All operations are serialized by an
// internal mutex: concurrent verifications queue rather than race on the
// secret-store entry.
type Manager struct {
	mu      sync.Mutex
	secrets secrets.Store
	gate    biometric.Gate
	users   users.Repository
	now     func() time.Time

	// in-memory session state, never persisted
	principal       *models.User
	authenticatedAt time.Time
	failedAttempts  int
}

// NewManager wires a Manager to its capability adapters.
func NewManager(store secrets.Store, gate biometric.Gate, repo users.Repository) *Manager {
	return &Manager{secrets: store, gate: gate, users: repo, now: time.Now}
}

// Setup establishes the device credential and creates the principal record.
// Fails with ErrAlreadySetUp when a credential exists and ErrWeakPassword
// when the password is shorter than MinPasswordLen.
func (m *Manager) Setup(ctx context.Context, name, password string, enableBiometrics bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := m.loadCredential(ctx)
	if err != nil && !errors.Is(err, ErrNotSetUp) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySetUp
	}
	if len(password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}

	salt := cryptox.NewSalt()
	hash := cryptox.HashPassword([]byte(password), salt)
	now := m.now().UTC()

	user := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: create principal: %w", ErrStorage, err)
	}

	cred := &Credential{
		PrincipalID:      user.ID,
		PasswordHash:     hash,
		Salt:             fmt.Sprintf("%x", salt),
		BiometricEnabled: enableBiometrics,
		LastLogin:        now.UnixMilli(),
	}
	if err := m.storeCredential(ctx, cred); err != nil {
		return nil, err
	}

	m.principal = user
	m.authenticatedAt = now
	m.failedAttempts = 0
	return user, nil
}

// VerifyPassword re-derives the hash for the candidate password and compares
// it in constant time. On success it updates lastLogin and opens a session.
func (m *Manager) VerifyPassword(ctx context.Context, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cred, err := m.loadCredential(ctx)
	if err != nil {
		return nil, err
	}
	salt, err := cred.SaltBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !cryptox.VerifyPassword([]byte(password), salt, cred.PasswordHash) {
		m.failedAttempts++
		return nil, ErrInvalidCredential
	}
	return m.openSession(ctx, cred)
}

// VerifyBiometric performs a single biometric challenge against the gate.
// Biometric success never substitutes for a credential: without a stored
// credential the call fails with ErrNotSetUp before the gate is consulted.
func (m *Manager) VerifyBiometric(ctx context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cred, err := m.loadCredential(ctx)
	if err != nil {
		return nil, err
	}
	if !cred.BiometricEnabled {
		return nil, ErrBiometricDisabled
	}
	if !m.gate.Available(ctx) {
		return nil, ErrBiometricUnavailable
	}
	ok, err := m.gate.Challenge(ctx, BiometricPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBiometricFailed, err)
	}
	if !ok {
		return nil, ErrBiometricFailed
	}
	return m.openSession(ctx, cred)
}

// SetBiometricEnabled flips the biometric flag on the stored credential.
func (m *Manager) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cred, err := m.loadCredential(ctx)
	if err != nil {
		return err
	}
	cred.BiometricEnabled = enabled
	return m.storeCredential(ctx, cred)
}

// IsSetUp reports whether a local credential exists. Pure existence check.
func (m *Manager) IsSetUp(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.secrets.Get(ctx, SecretName)
	if errors.Is(err, secrets.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", ErrStorage, SecretName, err)
	}
	return true, nil
}

// CurrentPrincipal returns the principal associated with the device
// credential, or nil when none exists. The value is memoized; Logout and
// Reset invalidate it. Returning a principal does not imply an
// authenticated session.
func (m *Manager) CurrentPrincipal(ctx context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.principal != nil {
		return m.principal, nil
	}

	cred, err := m.loadCredential(ctx)
	if errors.Is(err, ErrNotSetUp) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user, err := m.users.GetByID(ctx, cred.PrincipalID)
	if err != nil {
		return nil, fmt.Errorf("%w: load principal %s: %w", ErrStorage, cred.PrincipalID, err)
	}
	m.principal = user
	return user, nil
}

// State returns the current lifecycle state descriptor.
func (m *Manager) State(ctx context.Context) (State, error) {
	m.mu.Lock()
	authenticated := !m.authenticatedAt.IsZero()
	principal := m.principal
	at := m.authenticatedAt
	m.mu.Unlock()

	if authenticated {
		return State{Kind: StateAuthenticated, Principal: principal, AuthenticatedAt: at}, nil
	}
	set, err := m.IsSetUp(ctx)
	if err != nil {
		return State{}, err
	}
	if set {
		return State{Kind: StateSet}, nil
	}
	return State{Kind: StateUnset}, nil
}

// Session returns the live session, or nil when no verification has
// succeeded in this process.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.authenticatedAt.IsZero() {
		return nil
	}
	return &Session{Principal: m.principal, AuthenticatedAt: m.authenticatedAt}
}

// Logout clears the in-memory session only; the credential and principal
// persist and the next access requires re-verification. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.principal = nil
	m.authenticatedAt = time.Time{}
}

// Reset irreversibly deletes the local credential and clears the session.
// The principal row and business data remain; without the password there is
// no way back into them short of a fresh Setup.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.secrets.Delete(ctx, SecretName); err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrStorage, SecretName, err)
	}
	m.principal = nil
	m.authenticatedAt = time.Time{}
	m.failedAttempts = 0
	return nil
}

// FailedAttempts reports consecutive failed password verifications since the
// last success. Exposed as a hook for an attempt-limiting policy; the
// manager itself never locks out or backs off.
func (m *Manager) FailedAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failedAttempts
}

// openSession finalizes a successful verification under the held lock.
func (m *Manager) openSession(ctx context.Context, cred *Credential) (*models.User, error) {
	now := m.now().UTC()
	cred.LastLogin = now.UnixMilli()
	if err := m.storeCredential(ctx, cred); err != nil {
		return nil, err
	}

	user, err := m.users.GetByID(ctx, cred.PrincipalID)
	if err != nil {
		return nil, fmt.Errorf("%w: load principal %s: %w", ErrStorage, cred.PrincipalID, err)
	}
	m.principal = user
	m.authenticatedAt = now
	m.failedAttempts = 0
	return user, nil
}

func (m *Manager) loadCredential(ctx context.Context) (*Credential, error) {
	blob, err := m.secrets.Get(ctx, SecretName)
	if errors.Is(err, secrets.ErrNotFound) {
		return nil, ErrNotSetUp
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorage, SecretName, err)
	}
	cred, err := unmarshalCredential(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return cred, nil
}

func (m *Manager) storeCredential(ctx context.Context, cred *Credential) error {
	blob, err := cred.marshal()
	if err != nil {
		return fmt.Errorf("%w: serialize credential: %w", ErrStorage, err)
	}
	if err := m.secrets.Put(ctx, SecretName, blob); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorage, SecretName, err)
	}
	return nil
}
