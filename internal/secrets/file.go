package secrets

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tinashem/dukabook/internal/common"
)

const deviceKeySize = 32

// FileStore keeps all secrets in a single AES-GCM-encrypted JSON file.
// The encryption key is a random device key held in its own 0600 file,
// generated on first use. Writes go through a temp file and rename so the
// store is never left half-written.
type FileStore struct {
	mu      sync.Mutex
	path    string
	key     []byte
	entries map[string][]byte
	loaded  bool
}

// NewFileStore opens (or prepares to create) the secret store at path,
// loading the device key from keyPath, creating it if absent.
func NewFileStore(path, keyPath string) (*FileStore, error) {
	key, err := loadOrCreateDeviceKey(keyPath)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path, key: key}, nil
}

func loadOrCreateDeviceKey(keyPath string) ([]byte, error) {
	key, err := os.ReadFile(keyPath)
	if err == nil {
		if len(key) != deviceKeySize {
			return nil, fmt.Errorf("device key file %s has wrong size %d", keyPath, len(key))
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read device key: %w", err)
	}

	key = common.GenerateRandBytes(deviceKeySize)
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := writeFileAtomic(keyPath, key, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write device key: %w", err)
	}
	return key, nil
}

func (s *FileStore) Put(ctx context.Context, name string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	value := make([]byte, len(blob))
	copy(value, blob)
	s.entries[name] = value
	return s.flush()
}

func (s *FileStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
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

func (s *FileStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	if _, ok := s.entries[name]; !ok {
		return nil
	}
	delete(s.entries, name)
	return s.flush()
}

// load reads and decrypts the store file once per process.
func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.entries = make(map[string][]byte)
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read secret store: %w", err)
	}

	aead, err := s.aead()
	if err != nil {
		return err
	}
	if len(raw) < aead.NonceSize() {
		return fmt.Errorf("secret store file %s is truncated", s.path)
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("failed to decrypt secret store: %w", err)
	}

	entries := make(map[string][]byte)
	if err := json.Unmarshal(plaintext, &entries); err != nil {
		return fmt.Errorf("failed to parse secret store: %w", err)
	}
	s.entries = entries
	s.loaded = true
	return nil
}

func (s *FileStore) flush() error {
	plaintext, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to serialize secret store: %w", err)
	}

	aead, err := s.aead()
	if err != nil {
		return err
	}
	nonce := common.GenerateRandBytes(aead.NonceSize())
	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create secrets directory: %w", err)
	}
	if err := writeFileAtomic(s.path, append(nonce, ciphertext...), 0o600); err != nil {
		return fmt.Errorf("failed to write secret store: %w", err)
	}
	return nil
}

func (s *FileStore) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
