package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/Soulfra/agent-router-sub005/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Signer mints signed session tokens.
type Signer interface {
	Sign(claims Claims) (string, error)
	KID() string
}

// EdDSASigner signs session tokens with a single Ed25519 key. This service
// issues tokens with exactly one live key; consumers verify against the
// paired EdDSAVerifier rather than a JWKS lookup.
type EdDSASigner struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// NewEdDSASigner wraps an Ed25519 private key for token signing. The kid is
// derived from the public key so restarts with the same key keep the same id.
func NewEdDSASigner(key ed25519.PrivateKey) (*EdDSASigner, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("jwtx: invalid Ed25519 private key size %d", len(key))
	}
	pub := key.Public().(ed25519.PublicKey)
	return &EdDSASigner{
		kid: cryptox.IdentityID(pub),
		key: key,
		pub: pub,
	}, nil
}

func (s *EdDSASigner) KID() string { return s.kid }

// Public returns the verification key for pairing with a verifier.
func (s *EdDSASigner) Public() ed25519.PublicKey { return s.pub }

// Sign turns claims into a signed JWT string.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	if s.key == nil {
		return "", errors.New("jwtx: nil Ed25519 key")
	}
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}
