package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SeedSize is the Ed25519 private seed length in bytes.
const SeedSize = ed25519.SeedSize

// KeyPair bundles an Ed25519 key pair. The private key may be nil for
// verification-only use (e.g. an identity loaded from its public record).
type KeyPair struct {
	Private ed25519.PrivateKey
	Public  ed25519.PublicKey
}

// GenerateKeyPair generates a new Ed25519 key pair from crypto/rand.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key pair: %w", err)
	}
	return &KeyPair{Private: priv, Public: pub}, nil
}

// KeyPairFromSeed reconstructs a key pair from a 32-byte private seed.
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("cryptox: seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{
		Private: priv,
		Public:  priv.Public().(ed25519.PublicKey),
	}, nil
}

// PublicOnly wraps a bare public key as a verification-only key pair.
func PublicOnly(pub []byte) (*KeyPair, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("cryptox: public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	cp := make(ed25519.PublicKey, len(pub))
	copy(cp, pub)
	return &KeyPair{Public: cp}, nil
}

// CanSign reports whether the key pair holds a usable private key.
func (kp *KeyPair) CanSign() bool {
	return kp != nil && len(kp.Private) == ed25519.PrivateKeySize
}

// Seed returns the 32-byte private seed, or nil for verification-only pairs.
func (kp *KeyPair) Seed() []byte {
	if !kp.CanSign() {
		return nil
	}
	return kp.Private.Seed()
}

// Sign signs data with the private key. Callers must check CanSign first;
// signing without a private key is a programmer error.
func (kp *KeyPair) Sign(data []byte) []byte {
	return ed25519.Sign(kp.Private, data)
}

// VerifySignature reports whether sig is a valid Ed25519 signature over data
// by pub. Malformed keys or signatures return false, never panic.
func VerifySignature(pub, data, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), data, sig)
}

// IdentityID derives the stable identity id for a public key:
// "id_" + first 16 hex chars of sha256(publicKey). The derivation is pure,
// so the same public key always maps to the same id across processes.
func IdentityID(pub []byte) string {
	sum := sha256.Sum256(pub)
	return "id_" + hex.EncodeToString(sum[:])[:16]
}
