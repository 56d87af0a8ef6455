// Package vault defines the narrow adapter contract between the secure store
// and a platform credential vault, together with the backends shipped with
// the project (in-memory, OS keyring, encrypted files, sqlite, postgres, S3).
//
// Adapters translate backend-specific failures into two sentinels
// (ErrNotFound, ErrDuplicate) plus BackendError for everything else, so the
// store never has to know which vault it is talking to. Callers should use
// errors.Is / errors.As to match these values.
package vault

import (
	"context"
	"errors"
	"fmt"
)

// Accessibility is the vault-level rule governing when an entry's payload may
// be read. Backends without a native notion persist it alongside the payload
// so it survives a round trip.
type Accessibility int

const (
	// AccessibleWhenUnlocked allows reads only while the device or session
	// is unlocked. This is the default for new entries.
	AccessibleWhenUnlocked Accessibility = iota

	// AccessibleAfterFirstUnlock allows reads after the first unlock since
	// boot, including while subsequently locked.
	AccessibleAfterFirstUnlock

	// AccessibleAlways allows reads at any time.
	AccessibleAlways
)

var (
	// ErrNotFound is reported when no entry exists for the given key.
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicate is reported by Add when an entry already exists.
	ErrDuplicate = errors.New("entry already exists")
)

// BackendError wraps a backend-specific failure, preserving the raw status
// code for diagnostics.
type BackendError struct {
	Backend string
	Code    string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s vault: %s: %v", e.Backend, e.Code, e.Err)
	}
	return fmt.Sprintf("%s vault: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func backendErr(backend, code string, err error) *BackendError {
	return &BackendError{Backend: backend, Code: code, Err: err}
}

// Adapter is the four-primitive contract every vault backend implements.
// Each call is a single synchronous request; adapters do not retry, cache or
// batch, and must leave any existing entry untouched when a call fails.
type Adapter interface {
	// Add inserts a new entry. Reports ErrDuplicate if one already exists
	// under key.
	Add(ctx context.Context, key string, payload []byte, acc Accessibility) error

	// Query looks up the entry for key. With wantData false the payload is
	// not returned (backends use the cheapest existence probe they have);
	// with wantData true the stored payload is returned. Reports ErrNotFound
	// if no entry exists.
	Query(ctx context.Context, key string, wantData bool) ([]byte, error)

	// Update overwrites the payload of an existing entry. Reports
	// ErrNotFound if no entry exists under key.
	Update(ctx context.Context, key string, payload []byte, acc Accessibility) error

	// Delete removes the entry. Reports ErrNotFound if none existed.
	Delete(ctx context.Context, key string) error
}
