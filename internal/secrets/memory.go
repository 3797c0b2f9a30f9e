package secrets

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests. It honors the same contract
// as FileStore but nothing survives the process.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte

	// FailNext, when set, makes the next operation return the given error.
	// Used to simulate adapter-level storage failures.
	FailNext error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *MemoryStore) Put(ctx context.Context, name string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	value := make([]byte, len(blob))
	copy(value, blob)
	s.entries[name] = value
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	blob, ok := s.entries[name]
	if !ok {
		return nil, ErrNotFound
	}
	value := make([]byte, len(blob))
	copy(value, blob)
	return value, nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	delete(s.entries, name)
	return nil
}
