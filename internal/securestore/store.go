// Package securestore implements a generic secure key-value store for
// structured secrets. A Store composes a serialization codec with a vault
// adapter: records are encoded to opaque bytes and persisted under string
// keys in the platform vault, with a uniform typed error model on top.
//
// The store keeps no state of its own — no cache, no index, no retries; each
// operation is a single synchronous round trip to the vault. Concurrent
// calls targeting the same key race at the vault level, exactly as they
// would against the platform service directly.
package securestore

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/lockbox/internal/securestore/codec"
	"github.com/dmitrijs2005/lockbox/internal/vault"
)

// Store is a facade over one vault namespace, generic over the record type
// it persists. Construct with New; the zero value is not usable.
type Store[T any] struct {
	adapter vault.Adapter
	codec   codec.Codec
	acc     vault.Accessibility
}

// Option customizes a Store.
type Option[T any] func(*Store[T])

// WithCodec substitutes the serialization strategy (default: codec.JSON).
func WithCodec[T any](c codec.Codec) Option[T] {
	return func(s *Store[T]) { s.codec = c }
}

// WithAccessibility sets the accessibility policy for entries written by
// this store (default: vault.AccessibleWhenUnlocked).
func WithAccessibility[T any](acc vault.Accessibility) Option[T] {
	return func(s *Store[T]) { s.acc = acc }
}

func New[T any](adapter vault.Adapter, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		adapter: adapter,
		codec:   codec.JSON{},
		acc:     vault.AccessibleWhenUnlocked,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add inserts a new record under key. It reports ErrItemAlreadyExists if an
// entry already exists (probed before writing — Add never silently
// overwrites), *EncodeError if serialization fails before the vault is
// touched, and *OpError for any other vault failure.
func (s *Store[T]) Add(ctx context.Context, key string, record T) error {
	if key == "" {
		return ErrEmptyKey
	}

	exists, err := s.exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrItemAlreadyExists
	}

	payload, err := s.codec.Encode(record)
	if err != nil {
		return &EncodeError{Err: err}
	}

	if err := s.adapter.Add(ctx, key, payload, s.acc); err != nil {
		// The vault may still report a duplicate if the entry appeared
		// between the probe and the write.
		if errors.Is(err, vault.ErrDuplicate) {
			return ErrItemAlreadyExists
		}
		return opError(err)
	}

	return nil
}

// Retrieve returns the record stored under key. It reports ErrItemNotFound
// if no entry exists, *DecodeError if the stored payload cannot be converted
// back (the entry is left untouched), and *OpError for any other vault
// failure.
func (s *Store[T]) Retrieve(ctx context.Context, key string) (T, error) {
	var record T

	if key == "" {
		return record, ErrEmptyKey
	}

	payload, err := s.adapter.Query(ctx, key, true)
	if err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return record, ErrItemNotFound
		}
		return record, opError(err)
	}

	if err := s.codec.Decode(payload, &record); err != nil {
		var zero T
		return zero, &DecodeError{Err: err}
	}

	return record, nil
}

// Update replaces the record stored under key, keeping the accessibility
// policy. It reports ErrItemNotFound if no entry exists, *EncodeError if
// serialization fails, and *OpError for any other vault failure.
func (s *Store[T]) Update(ctx context.Context, key string, record T) error {
	if key == "" {
		return ErrEmptyKey
	}

	exists, err := s.exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrItemNotFound
	}

	payload, err := s.codec.Encode(record)
	if err != nil {
		return &EncodeError{Err: err}
	}

	if err := s.adapter.Update(ctx, key, payload, s.acc); err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return ErrItemNotFound
		}
		return opError(err)
	}

	return nil
}

// Upsert stores the record under key whether or not an entry already exists:
// it encodes once, tries an update, and falls back to an add when the vault
// reports no entry. Upsert never reports ErrItemNotFound or
// ErrItemAlreadyExists; only *EncodeError or *OpError can surface.
func (s *Store[T]) Upsert(ctx context.Context, key string, record T) error {
	if key == "" {
		return ErrEmptyKey
	}

	payload, err := s.codec.Encode(record)
	if err != nil {
		return &EncodeError{Err: err}
	}

	err = s.adapter.Update(ctx, key, payload, s.acc)
	if err == nil {
		return nil
	}
	if !errors.Is(err, vault.ErrNotFound) {
		return opError(err)
	}

	if err := s.adapter.Add(ctx, key, payload, s.acc); err != nil {
		// A duplicate here means the entry appeared after the failed
		// update; surface it as an operation failure, not as "exists".
		return opError(err)
	}

	return nil
}

// Delete removes the entry stored under key. It reports ErrItemNotFound if
// none existed and *OpError for any other vault failure.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := s.adapter.Delete(ctx, key); err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return ErrItemNotFound
		}
		return opError(err)
	}

	return nil
}

// exists probes the vault without requesting payload data. Absence is a
// normal false result, never an error.
func (s *Store[T]) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.adapter.Query(ctx, key, false)
	if err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return false, nil
		}
		return false, opError(err)
	}
	return true, nil
}

// opError wraps a vault failure, preserving the backend status code when the
// adapter reported one.
func opError(err error) *OpError {
	var backendErr *vault.BackendError
	if errors.As(err, &backendErr) {
		return &OpError{Code: backendErr.Code, Err: err}
	}
	return &OpError{Err: err}
}
