package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Keyring stores entries in the operating system keyring (macOS Keychain,
// Windows Credential Manager, Secret Service on Linux) via zalando/go-keyring.
// The service name acts as the vault namespace; the entry key is the account.
//
// The keyring API is string-valued, so payloads are base64-wrapped. It also
// has no metadata-only lookup, so Query fetches and discards the secret even
// when wantData is false.
type Keyring struct {
	service string
}

func NewKeyring(service string) *Keyring {
	return &Keyring{service: service}
}

func (k *Keyring) Add(ctx context.Context, key string, payload []byte, acc Accessibility) error {
	_, err := keyring.Get(k.service, key)
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return backendErr("keyring", "", err)
	}

	if err := keyring.Set(k.service, key, base64.StdEncoding.EncodeToString(payload)); err != nil {
		return backendErr("keyring", "", err)
	}
	return nil
}

func (k *Keyring) Query(ctx context.Context, key string, wantData bool) ([]byte, error) {
	s, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, backendErr("keyring", "", err)
	}
	if !wantData {
		return nil, nil
	}

	payload, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, backendErr("keyring", "", fmt.Errorf("malformed stored value: %w", err))
	}
	return payload, nil
}

func (k *Keyring) Update(ctx context.Context, key string, payload []byte, acc Accessibility) error {
	// Set overwrites unconditionally, so probe first to keep update-requires-
	// existing semantics.
	if _, err := keyring.Get(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return backendErr("keyring", "", err)
	}

	if err := keyring.Set(k.service, key, base64.StdEncoding.EncodeToString(payload)); err != nil {
		return backendErr("keyring", "", err)
	}
	return nil
}

func (k *Keyring) Delete(ctx context.Context, key string) error {
	if err := keyring.Delete(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return backendErr("keyring", "", err)
	}
	return nil
}
