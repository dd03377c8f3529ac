package domain

// ProofType tags the variant of a signed proof. Stored in the envelope's
// "action" metadata so a verifier can dispatch without guessing at payload
// shapes.
type ProofType string

const (
	ProofTypeOwnership   ProofType = "identity_proof"
	ProofTypeAuth        ProofType = "auth_response"
	ProofTypeWork        ProofType = "proof_of_work"
	ProofTypeTime        ProofType = "time_proof"
	ProofTypeMultiFactor ProofType = "multi_factor"
	ProofTypeAction      ProofType = "action_record"
)

// OwnershipPayload is signed to prove possession of the private key behind
// a public key, bound to a verifier-supplied random challenge.
type OwnershipPayload struct {
	Challenge string `json:"challenge"`  // hex
	PublicKey string `json:"public_key"` // base64, same as the envelope key
	Timestamp int64  `json:"timestamp"`  // Unix ms
}

// OwnershipProof is the prover's complete answer to a challenge.
type OwnershipProof struct {
	IdentityID string         `json:"identity_id"`
	Proof      SignedEnvelope `json:"proof"`
	Challenge  string         `json:"challenge"` // hex echo of the challenge
}

// AuthResponsePayload is signed in response to a challenge bound to a
// session, binding challenge, session and identity together.
type AuthResponsePayload struct {
	Challenge  string `json:"challenge"`  // hex
	SessionID  string `json:"session_id"` // ULID
	IdentityID string `json:"identity_id"`
	Timestamp  int64  `json:"timestamp"` // Unix ms
}

// ProofOfWorkPayload records a completed nonce search. Verifiers recompute
// the hash from the embedded fields, so the proof is self-contained.
type ProofOfWorkPayload struct {
	IdentityID    string `json:"identity_id"`
	Nonce         int64  `json:"nonce"`
	Hash          string `json:"hash"` // hex sha256
	Difficulty    int    `json:"difficulty"`
	StartTime     int64  `json:"start_time"` // Unix ms
	EndTime       int64  `json:"end_time"`   // Unix ms
	ComputeTimeMs int64  `json:"compute_time_ms"`
}

// TimeProofPayload attests to account age without revealing any other
// attribute of the identity.
type TimeProofPayload struct {
	IdentityID     string `json:"identity_id"`
	CreatedAt      int64  `json:"created_at"`   // Unix ms
	CurrentTime    int64  `json:"current_time"` // Unix ms
	AccountAgeDays int    `json:"account_age_days"`
}

// ReputationSnapshot is a point-in-time view of the reputation ledger plus
// the score computed from it. Never authoritative; always recomputed.
type ReputationSnapshot struct {
	Score           int `json:"score"`
	Commits         int `json:"commits"`
	VerifiedActions int `json:"verified_actions"`
	AccountAgeDays  int `json:"account_age_days"`
}

// MultiFactorPayload composes a selectable subset of proof factors. The
// outer envelope signature binds all included factors together, so no
// factor can be lifted out and replayed inside a different bundle.
type MultiFactorPayload struct {
	IdentityID  string              `json:"identity_id"`
	Ownership   *SignedEnvelope     `json:"ownership,omitempty"`
	ProofOfWork *SignedEnvelope     `json:"proof_of_work,omitempty"`
	TimeProof   *SignedEnvelope     `json:"time_proof,omitempty"`
	Reputation  *ReputationSnapshot `json:"reputation,omitempty"`
	TOTPCode    string              `json:"totp_code,omitempty"`
	Timestamp   int64               `json:"timestamp"` // Unix ms
}

// AuthFailReason enumerates why an auth response was rejected, in the order
// the checks run.
type AuthFailReason string

const (
	AuthFailChallengeMismatch AuthFailReason = "challenge_mismatch"
	AuthFailSessionMismatch   AuthFailReason = "session_mismatch"
	AuthFailInvalidSignature  AuthFailReason = "invalid_signature"
	AuthFailExpired           AuthFailReason = "expired"
)

// AuthResult is the outcome of verifying an auth response.
type AuthResult struct {
	Valid  bool           `json:"valid"`
	Reason AuthFailReason `json:"reason,omitempty"`
}
