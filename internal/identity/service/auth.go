package service

import (
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/pkg/cryptox"
	"github.com/Soulfra/agent-router-sub005/pkg/idx"
)

// BeginAuth starts a challenge-response handshake on the verifier side:
// a fresh 32-byte challenge bound to a new session id, valid for
// domain.ChallengeTTL. The protocol itself is stateless; the caller keeps
// the challenge for the later comparison.
func BeginAuth() (domain.Challenge, error) {
	raw, err := cryptox.GenerateChallenge()
	if err != nil {
		return domain.Challenge{}, err
	}
	return domain.Challenge{
		Challenge: hex.EncodeToString(raw),
		SessionID: idx.New().String(),
		ExpiresAt: time.Now().UTC().Add(domain.ChallengeTTL),
	}, nil
}

// CreateProof builds an ownership proof over a verifier-supplied challenge
// (hex), proving private-key possession without revealing the key.
func (id *Identity) CreateProof(challengeHex string) (domain.OwnershipProof, error) {
	now := id.now().UTC()

	env, err := signEnvelope(id.keys, domain.OwnershipPayload{
		Challenge: challengeHex,
		PublicKey: env64(id.keys.Public),
		Timestamp: now.UnixMilli(),
	}, domain.ProofTypeOwnership, now)
	if err != nil {
		return domain.OwnershipProof{}, err
	}

	return domain.OwnershipProof{
		IdentityID: id.ID,
		Proof:      env,
		Challenge:  challengeHex,
	}, nil
}

// VerifyProof checks an ownership proof against the original challenge:
// the signed payload must echo the exact challenge and the envelope
// signature must verify. Fails closed on malformed input.
func VerifyProof(proof domain.OwnershipProof, originalChallengeHex string) bool {
	var payload domain.OwnershipPayload
	if err := json.Unmarshal(proof.Proof.Data, &payload); err != nil {
		return false
	}
	if payload.Challenge != originalChallengeHex {
		return false
	}
	return VerifyEnvelope(proof.Proof)
}

// RespondToChallenge is the prover side of the handshake: it signs the
// challenge, session id and its own identity id together.
func (id *Identity) RespondToChallenge(challengeHex, sessionID string) (domain.SignedEnvelope, error) {
	now := id.now().UTC()
	return signEnvelope(id.keys, domain.AuthResponsePayload{
		Challenge:  challengeHex,
		SessionID:  sessionID,
		IdentityID: id.ID,
		Timestamp:  now.UnixMilli(),
	}, domain.ProofTypeAuth, now)
}

// VerifyAuthResponse validates a handshake response against the original
// challenge. Checks run in a fixed order: challenge equality, session
// equality, signature validity, then response age. A response older than
// ChallengeTTL (strictly greater) is expired; age exactly at the bound is
// accepted.
func VerifyAuthResponse(resp domain.SignedEnvelope, original domain.Challenge) domain.AuthResult {
	return VerifyAuthResponseAt(resp, original, time.Now())
}

// VerifyAuthResponseAt is VerifyAuthResponse with an explicit clock.
// Malformed responses fail the first comparison: verification never
// crashes and never defaults to valid.
func VerifyAuthResponseAt(resp domain.SignedEnvelope, original domain.Challenge, now time.Time) domain.AuthResult {
	var payload domain.AuthResponsePayload
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return domain.AuthResult{Valid: false, Reason: domain.AuthFailChallengeMismatch}
	}

	if payload.Challenge != original.Challenge {
		return domain.AuthResult{Valid: false, Reason: domain.AuthFailChallengeMismatch}
	}
	if payload.SessionID != original.SessionID {
		return domain.AuthResult{Valid: false, Reason: domain.AuthFailSessionMismatch}
	}
	if !VerifyEnvelope(resp) {
		return domain.AuthResult{Valid: false, Reason: domain.AuthFailInvalidSignature}
	}
	if now.UnixMilli()-payload.Timestamp > domain.ChallengeTTL.Milliseconds() {
		return domain.AuthResult{Valid: false, Reason: domain.AuthFailExpired}
	}

	return domain.AuthResult{Valid: true}
}
