package domain

import "time"

// ChallengeTTL is how long an issued challenge stays valid. The same bound
// applies to the timestamp inside an auth response: age strictly greater
// than this is rejected, age exactly at the bound is still accepted.
const ChallengeTTL = 5 * time.Minute

// Challenge is a verifier-issued random nonce, optionally bound to a
// session. Stateless on the prover side; the verifier keeps it only long
// enough to compare.
type Challenge struct {
	Challenge string    `json:"challenge"`            // hex of 32 random bytes
	SessionID string    `json:"session_id,omitempty"` // ULID
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge is past its expiry at now.
// Strict: exactly at ExpiresAt is still valid.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
