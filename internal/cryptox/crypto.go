// Package cryptox provides the cryptographic primitives used by the
// encrypted file vault: argon2id key derivation and AES-GCM sealing of raw
// byte payloads.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"golang.org/x/crypto/argon2"
)

// DeriveKey derives a 32-byte AES key from a passphrase and salt using
// argon2id.
//
// Parameters (time=1, memory=64MB, threads=4) follow the argon2id
// recommendations for interactive use. The same passphrase and salt always
// yield the same key.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// GenerateRandBytes returns size cryptographically random bytes.
func GenerateRandBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Seal encrypts plaintext with AES-GCM under the given key.
//
// The key must be a valid AES key length (16, 24, or 32 bytes). A new random
// 12-byte nonce is generated for each call; ciphertext and nonce are returned
// separately so the storage format is up to the caller.
func Seal(key, plaintext []byte) (ciphertext, nonce []byte, err error) {

	// nonce
	nonce, err = GenerateRandBytes(12)
	if err != nil {
		return nil, nil, err
	}

	// new cypher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	// шифруем
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// Open decrypts ciphertext produced by Seal. The key and the 12-byte nonce
// must be the ones used during encryption; any mismatch (including a wrong
// passphrase upstream) fails authentication and returns an error.
func Open(key, nonce, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

// Wipe overwrites the contents of the provided byte slice with zeros. Useful
// for removing passphrases and derived keys from memory after use. A nil
// slice is a no-op.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
