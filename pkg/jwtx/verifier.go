package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken reports a token that failed signature or time validation.
var ErrInvalidToken = errors.New("jwtx: invalid token")

// Verifier checks session tokens and returns their claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// EdDSAVerifier verifies tokens signed by the paired EdDSASigner.
type EdDSAVerifier struct {
	pub    ed25519.PublicKey
	issuer string
}

// NewEdDSAVerifier builds a verifier for the given public key. If issuer is
// non-empty the iss claim must match.
func NewEdDSAVerifier(pub ed25519.PublicKey, issuer string) (*EdDSAVerifier, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("jwtx: invalid Ed25519 public key size %d", len(pub))
	}
	return &EdDSAVerifier{pub: pub, issuer: issuer}, nil
}

// Verify parses and validates raw, enforcing the EdDSA signing method,
// expiry and issuer. Fails closed: any parse error surfaces as ErrInvalidToken.
func (v *EdDSAVerifier) Verify(raw string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return v.pub, nil
	}, opts...)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}
