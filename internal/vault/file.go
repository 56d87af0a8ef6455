package vault

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/lockbox/internal/cryptox"
)

const (
	fileSaltName = "vault.salt"
	fileSaltSize = 16

	// entry file layout: [1 byte accessibility][12 byte nonce][ciphertext]
	fileHeaderSize = 1 + 12
)

// File stores entries as individual AES-GCM sealed files in a directory.
// The encryption key is derived from a passphrase with argon2id; the salt is
// generated on first use and kept next to the entries. Filenames are the
// SHA-256 of the entry key, so arbitrary keys never hit path length or
// character limits.
//
// Writes go through a temp file and rename, so a crashed write never leaves
// a truncated entry behind.
type File struct {
	dir string
	key []byte
}

// NewFile opens (or initializes) a file vault in dir. The passphrase is only
// used to derive the encryption key; the caller may wipe it afterwards.
func NewFile(dir string, passphrase []byte) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	salt, err := loadOrCreateSalt(filepath.Join(dir, fileSaltName))
	if err != nil {
		return nil, err
	}

	return &File{dir: dir, key: cryptox.DeriveKey(passphrase, salt)}, nil
}

func loadOrCreateSalt(path string) ([]byte, error) {
	salt, err := os.ReadFile(path)
	if err == nil {
		if len(salt) != fileSaltSize {
			return nil, fmt.Errorf("corrupt salt file %s", path)
		}
		return salt, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read salt: %w", err)
	}

	salt, err = cryptox.GenerateRandBytes(fileSaltSize)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return nil, fmt.Errorf("write salt: %w", err)
	}
	return salt, nil
}

func (f *File) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:])+".entry")
}

func (f *File) Add(ctx context.Context, key string, payload []byte, acc Accessibility) error {
	path := f.entryPath(key)

	if _, err := os.Stat(path); err == nil {
		return ErrDuplicate
	} else if !errors.Is(err, fs.ErrNotExist) {
		return backendErr("file", "", err)
	}

	return f.write(path, payload, acc)
}

func (f *File) Query(ctx context.Context, key string, wantData bool) ([]byte, error) {
	path := f.entryPath(key)

	if !wantData {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, ErrNotFound
			}
			return nil, backendErr("file", "", err)
		}
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, backendErr("file", "", err)
	}
	if len(data) < fileHeaderSize {
		return nil, backendErr("file", "", fmt.Errorf("corrupt entry %s", path))
	}

	payload, err := cryptox.Open(f.key, data[1:fileHeaderSize], data[fileHeaderSize:])
	if err != nil {
		return nil, backendErr("file", "", fmt.Errorf("open entry %s: %w", path, err))
	}
	return payload, nil
}

func (f *File) Update(ctx context.Context, key string, payload []byte, acc Accessibility) error {
	path := f.entryPath(key)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return backendErr("file", "", err)
	}

	return f.write(path, payload, acc)
}

func (f *File) Delete(ctx context.Context, key string) error {
	if err := os.Remove(f.entryPath(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return backendErr("file", "", err)
	}
	return nil
}

func (f *File) write(path string, payload []byte, acc Accessibility) error {
	ciphertext, nonce, err := cryptox.Seal(f.key, payload)
	if err != nil {
		return backendErr("file", "", err)
	}

	data := make([]byte, 0, fileHeaderSize+len(ciphertext))
	data = append(data, byte(acc))
	data = append(data, nonce...)
	data = append(data, ciphertext...)

	tmp := filepath.Join(f.dir, uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return backendErr("file", "", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return backendErr("file", "", err)
	}
	return nil
}
