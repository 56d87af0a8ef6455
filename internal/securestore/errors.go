package securestore

import (
	"errors"
	"fmt"
)

// Exactly one of the error kinds below is reported per failed call. Match
// the sentinels with errors.Is and the wrapping types with errors.As.
var (
	// ErrItemNotFound is reported when an operation required an existing
	// entry and none was found.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists is reported by Add when an entry already exists
	// under the key.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrEmptyKey is reported when the key is the empty string.
	ErrEmptyKey = errors.New("key must not be empty")
)

// EncodeError reports that a record could not be converted to bytes. The
// vault is never touched when encoding fails.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding failed: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError reports that a stored payload could not be converted back to a
// record. The vault entry itself is left untouched.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// OpError reports a vault-level failure not covered by the other kinds. Code
// carries the backend's raw status code when one was reported.
type OpError struct {
	Code string
	Err  error
}

func (e *OpError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("vault operation failed (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("vault operation failed: %v", e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
