package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	// stateDirPerm is the permission mode for the state directory (~/.plex-signin/).
	stateDirPerm = fs.FileMode(0o700)

	// stateFilePerm is the permission mode for the state database file.
	stateFilePerm = fs.FileMode(0o600)

	// stateOpenTimeout is the maximum time to wait for the bolt database lock.
	stateOpenTimeout = 5 * time.Second
)

var (
	appBucket     = []byte("app")
	secretsBucket = []byte("secrets")

	pinIDKey            = []byte("pinId")
	pinCodeKey          = []byte("pinCode")
	clientIdentifierKey = []byte("clientIdentifier")
)

// ErrSecretNotFound is returned by Secret when the key has no value.
var ErrSecretNotFound = errors.New("secret not found")

// PinSession is the pin a sign-in attempt is waiting on. It outlives the
// process so polling can resume after a restart.
type PinSession struct {
	ID   int64
	Code string
}

// State wraps a bbolt database for all persistent application state.
type State struct {
	db *bolt.DB
}

// Load opens the state database at ~/.plex-signin/state.db, creating it
// if it does not exist.
func Load() (*State, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}

	return LoadAt(path)
}

// LoadAt opens a state database at the given path, creating it if it
// does not exist. Useful for tests that need an isolated database.
func LoadAt(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), stateDirPerm); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := bolt.Open(path, stateFilePerm, &bolt.Options{Timeout: stateOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(appBucket); err != nil {
			return err
		}

		_, err := tx.CreateBucketIfNotExists(secretsBucket)

		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing state db: %w", err)
	}

	return &State{db: db}, nil
}

// Close closes the database.
func (s *State) Close() error {
	return s.db.Close()
}

// PinSession returns the pending pin, or nil when no sign-in is pending.
// A half-written pair (either key missing) counts as no pending pin.
func (s *State) PinSession() (*PinSession, error) {
	var ps *PinSession

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(appBucket)

		id := b.Get(pinIDKey)
		code := b.Get(pinCodeKey)

		if id == nil || code == nil {
			return nil
		}

		n, err := strconv.ParseInt(string(id), 10, 64)
		if err != nil {
			return fmt.Errorf("parsing stored pin id: %w", err)
		}

		ps = &PinSession{ID: n, Code: string(code)}

		return nil
	})

	return ps, err
}

// SetPinSession replaces the pending pin. Both keys are written in one
// transaction so a crash never leaves an id paired with another pin's code.
func (s *State) SetPinSession(ps PinSession) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(appBucket)

		if err := b.Put(pinIDKey, []byte(strconv.FormatInt(ps.ID, 10))); err != nil {
			return err
		}

		return b.Put(pinCodeKey, []byte(ps.Code))
	})
}

// ClearPinSession removes the pending pin. Clearing when nothing is
// pending is not an error.
func (s *State) ClearPinSession() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(appBucket)

		if err := b.Delete(pinIDKey); err != nil {
			return err
		}

		return b.Delete(pinCodeKey)
	})
}

// ClientIdentifier returns the identifier this installation presents to
// the account service, generating and persisting a random UUID on first use.
func (s *State) ClientIdentifier() (string, error) {
	var id string

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(appBucket)

		if v := b.Get(clientIdentifierKey); v != nil {
			id = string(v)
			return nil
		}

		id = uuid.NewString()

		return b.Put(clientIdentifierKey, []byte(id))
	})

	return id, err
}

// Secret returns the value stored under key in the secrets bucket.
func (s *State) Secret(key string) (string, error) {
	var value string

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(secretsBucket).Get([]byte(key))
		if v == nil {
			return ErrSecretNotFound
		}

		value = string(v)

		return nil
	})

	return value, err
}

// SetSecret stores value under key in the secrets bucket.
func (s *State) SetSecret(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(secretsBucket).Put([]byte(key), []byte(value))
	})
}

// DeleteSecret removes key from the secrets bucket.
func (s *State) DeleteSecret(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(secretsBucket).Delete([]byte(key))
	})
}

// DefaultPath returns ~/.plex-signin/state.db.
func DefaultPath() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}

	return filepath.Join(dir, ".plex-signin", "state.db"), nil
}
