// Package storage keeps the client's durable key/value slots: the bearer
// token, the locally held API key and the language preference.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Fixed slot names. They match the keys the web client kept in localStorage.
const (
	TokenKey    = "token"
	APIKeyKey   = "openai_api_key"
	LanguageKey = "i18nextLng"
)

// ErrNotFound is returned by Get when the slot is empty.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string-valued slot store.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func checkKey(key string) error {
	if !validKey.MatchString(key) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("storage: invalid key %q", key)
	}
	return nil
}

// FileStore keeps one file per key under dir. Files are written 0600 and
// the directory is created 0700 on first write.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is not touched
// until the first Set.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the root directory.
func (s *FileStore) Dir() string { return s.dir }

// Get returns the trimmed contents of the slot, or ErrNotFound.
func (s *FileStore) Get(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("storage.Get %s: %w", key, err)
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// Set writes value atomically (temp file + rename).
func (s *FileStore) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("storage.Set: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("storage.Set %s: %w", key, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("storage.Set %s: chmod: %w", key, err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("storage.Set %s: write: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage.Set %s: close: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		return fmt.Errorf("storage.Set %s: rename: %w", key, err)
	}
	return nil
}

// Remove deletes the slot. Removing an empty slot is not an error.
func (s *FileStore) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage.Remove %s: %w", key, err)
	}
	return nil
}

// MemoryStore is an in-process Store, used by tests and by callers that
// must not touch disk.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok || v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Has reports whether key holds a non-empty value.
func Has(s Store, key string) bool {
	_, err := s.Get(key)
	return err == nil
}

// TokenReader returns a func that reads the token slot of s on every
// call, or "" when it is empty. It fits client.TokenSource.
func TokenReader(s Store) func() string {
	return func() string {
		tok, err := s.Get(TokenKey)
		if err != nil {
			return ""
		}
		return tok
	}
}

// Overlay serves key from memory, seeded with value, and passes every
// other key through to base. Writes to key never reach base.
func Overlay(base Store, key, value string) Store {
	mem := NewMemoryStore()
	mem.data[key] = value
	return &overlay{base: base, key: key, mem: mem}
}

type overlay struct {
	base Store
	key  string
	mem  *MemoryStore
}

func (o *overlay) pick(key string) Store {
	if key == o.key {
		return o.mem
	}
	return o.base
}

func (o *overlay) Get(key string) (string, error) { return o.pick(key).Get(key) }
func (o *overlay) Set(key, value string) error    { return o.pick(key).Set(key, value) }
func (o *overlay) Remove(key string) error        { return o.pick(key).Remove(key) }
