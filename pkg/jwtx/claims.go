package jwtx

import (
	"time"

	"github.com/Soulfra/agent-router-sub005/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session tokens minted after
// a successful challenge-response handshake. Short-lived: the holder can
// always re-prove key possession.
const DefaultSessionTTL = 15 * time.Minute

// Claims are session-token claims. Subject is the identity id.
type Claims struct {
	jwt.RegisteredClaims

	// Tier is the trust tier name computed from the reputation score at
	// handshake time ("new", "established", "trusted", "verified", "custom").
	Tier string `json:"tier,omitempty"`

	// Score is the reputation score snapshot (0-100) at handshake time.
	Score int `json:"score,omitempty"`

	// AMR lists which proof factors were verified for this session,
	// e.g. ["ownership"], ["ownership","pow","totp"].
	AMR []string `json:"amr,omitempty"`
}

// NewSessionClaims builds claims for a freshly authenticated identity.
func NewSessionClaims(identityID, tier string, score int, amr []string, issuer string, ttl time.Duration, now time.Time) Claims {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identityID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Tier:  tier,
		Score: score,
		AMR:   amr,
	}
}

// NewJTI returns a random token id for the jti claim.
func NewJTI() string {
	return cryptox.MustGenerateToken(cryptox.TokenSize128)
}
