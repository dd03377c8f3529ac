package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Sealed-seed blob layout:
//
//	[1-byte version][16-byte salt][12-byte nonce][ciphertext+tag]
//
// The AES-256 key is derived from the passphrase with Argon2id using the
// parameters below. The parameters are fixed per blob version so old blobs
// stay decryptable if we ever tune them.
const (
	sealVersion   = 0x01
	sealSaltLen   = 16
	sealNonceLen  = 12
	sealArgonTime = 3
	sealArgonMem  = 64 * 1024 // KiB
	sealArgonPar  = 4
	sealKeyLen    = 32
)

var (
	// ErrSealPassphrase reports a wrong passphrase or corrupted blob.
	ErrSealPassphrase = errors.New("cryptox: seed unseal failed (wrong passphrase or corrupt blob)")
	// ErrSealFormat reports a blob that does not match the sealed layout.
	ErrSealFormat = errors.New("cryptox: malformed sealed seed blob")
)

// SealSeed encrypts a private key seed under a passphrase using
// Argon2id + AES-256-GCM. The output is safe to persist at rest.
func SealSeed(seed []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, sealSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("cryptox: seal salt: %w", err)
	}

	key := argon2.IDKey([]byte(passphrase), salt, sealArgonTime, sealArgonMem, sealArgonPar, sealKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: seal cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: seal gcm: %w", err)
	}

	nonce := make([]byte, sealNonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("cryptox: seal nonce: %w", err)
	}

	out := make([]byte, 0, 1+sealSaltLen+sealNonceLen+len(seed)+gcm.Overhead())
	out = append(out, sealVersion)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, seed, nil)
	return out, nil
}

// OpenSeed decrypts a blob produced by SealSeed.
func OpenSeed(blob []byte, passphrase string) ([]byte, error) {
	if len(blob) < 1+sealSaltLen+sealNonceLen+1 {
		return nil, ErrSealFormat
	}
	if blob[0] != sealVersion {
		return nil, fmt.Errorf("%w: unknown version 0x%02x", ErrSealFormat, blob[0])
	}

	salt := blob[1 : 1+sealSaltLen]
	nonce := blob[1+sealSaltLen : 1+sealSaltLen+sealNonceLen]
	ct := blob[1+sealSaltLen+sealNonceLen:]

	key := argon2.IDKey([]byte(passphrase), salt, sealArgonTime, sealArgonMem, sealArgonPar, sealKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: unseal cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: unseal gcm: %w", err)
	}

	seed, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, ErrSealPassphrase
	}
	return seed, nil
}
