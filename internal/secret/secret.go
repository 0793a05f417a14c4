// Package secret stores credentials outside ordinary application state.
package secret

import (
	"errors"
	"fmt"

	"github.com/alexjbarnes/plex-signin/internal/state"
	"github.com/zalando/go-keyring"
)

// TokenKey is the name the access token is stored under.
const TokenKey = "token"

// DefaultService is the keychain service name entries are grouped under.
const DefaultService = "plex-signin"

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("secret not found")

// Store is a single-namespace key-value store for secrets. Delete of an
// absent key succeeds.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// KeyringStore keeps secrets in the OS keychain (macOS Keychain, Secret
// Service on Linux, Windows Credential Manager).
type KeyringStore struct {
	service string
}

// NewKeyringStore returns a keychain store grouping entries under service.
func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = DefaultService
	}

	return &KeyringStore{service: service}
}

// Get reads key from the keychain. It returns ErrNotFound when absent.
func (k *KeyringStore) Get(key string) (string, error) {
	v, err := keyring.Get(k.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}

	if err != nil {
		return "", fmt.Errorf("reading %s from keychain: %w", key, err)
	}

	return v, nil
}

// Set writes key to the keychain, replacing any earlier value.
func (k *KeyringStore) Set(key, value string) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("writing %s to keychain: %w", key, err)
	}

	return nil
}

// Delete removes key. Removing an absent key is not an error.
func (k *KeyringStore) Delete(key string) error {
	err := keyring.Delete(k.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting %s from keychain: %w", key, err)
	}

	return nil
}

// StateStore keeps secrets in the state database. It is meant for
// headless hosts without a keychain; the only protection is the 0600
// file mode.
type StateStore struct {
	state *state.State
}

// NewStateStore returns a Store backed by st.
func NewStateStore(st *state.State) *StateStore {
	return &StateStore{state: st}
}

// Get reads key from the secrets bucket. It returns ErrNotFound when absent.
func (s *StateStore) Get(key string) (string, error) {
	v, err := s.state.Secret(key)
	if errors.Is(err, state.ErrSecretNotFound) {
		return "", ErrNotFound
	}

	return v, err
}

// Set writes key to the secrets bucket.
func (s *StateStore) Set(key, value string) error {
	return s.state.SetSecret(key, value)
}

// Delete removes key from the secrets bucket.
func (s *StateStore) Delete(key string) error {
	return s.state.DeleteSecret(key)
}

// Open returns the store for the named backend: "keyring" or "state".
func Open(backend, service string, st *state.State) (Store, error) {
	switch backend {
	case "", "keyring":
		return NewKeyringStore(service), nil
	case "state":
		if st == nil {
			return nil, errors.New("state backend requires an open state database")
		}

		return NewStateStore(st), nil
	default:
		return nil, fmt.Errorf("unknown secret backend %q", backend)
	}
}
