// Package apikey keeps the user's OpenAI API key on this machine.
// The key is never sent to the LangGPT backend.
package apikey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/naveenspark/langgpt/internal/storage"
)

// Prefix every accepted key starts with.
const Prefix = "sk-"

// ErrInvalidFormat is returned for keys without the sk- prefix.
var ErrInvalidFormat = errors.New("apikey: key must start with " + Prefix)

// KeyStore saves and reports the presence of an API key.
type KeyStore interface {
	Save(key string) error
	Has() bool
}

// Validate checks the key format only.
func Validate(key string) error {
	if !strings.HasPrefix(key, Prefix) || len(key) == len(Prefix) {
		return ErrInvalidFormat
	}
	return nil
}

// Local stores the key in a storage slot.
type Local struct {
	store storage.Store
}

var _ KeyStore = (*Local)(nil)

// NewLocal returns a KeyStore backed by s.
func NewLocal(s storage.Store) *Local {
	return &Local{store: s}
}

// Save validates key and writes it. Invalid keys are never written.
func (l *Local) Save(key string) error {
	key = strings.TrimSpace(key)
	if err := Validate(key); err != nil {
		return err
	}
	if err := l.store.Set(storage.APIKeyKey, key); err != nil {
		return fmt.Errorf("apikey.Save: %w", err)
	}
	return nil
}

// Has reports whether a key is stored.
func (l *Local) Has() bool {
	return storage.Has(l.store, storage.APIKeyKey)
}

// Mask renders key for display, keeping the prefix and the last four
// characters.
func Mask(key string) string {
	if len(key) <= len(Prefix)+4 {
		return strings.Repeat("•", len([]rune(key)))
	}
	return key[:len(Prefix)] + strings.Repeat("•", 8) + key[len(key)-4:]
}
