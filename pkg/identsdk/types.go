package identsdk

import (
	"encoding/json"
	"time"
)

// SignedEnvelope mirrors the service's signed object wire shape: canonical
// payload, signature over its canonical encoding, the signer's public key
// and a Unix-millisecond timestamp.
type SignedEnvelope struct {
	Data      json.RawMessage   `json:"data"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Signature string            `json:"signature"`  // base64
	PublicKey string            `json:"public_key"` // base64
	Timestamp int64             `json:"timestamp"`  // Unix ms
}

// HealthChecks reports per-dependency health in a readiness response.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// CreateIdentityRequest creates a server-held identity.
type CreateIdentityRequest struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateIdentityResponse carries the new identity id and its full exported
// JSON form, private key included. This is the only response that ever
// contains a private key; store it or lose it.
type CreateIdentityResponse struct {
	IdentityID string          `json:"identity_id"`
	Identity   json.RawMessage `json:"identity"`
}

// ReputationInfo is the public view of an identity's reputation ledger.
type ReputationInfo struct {
	Commits         int        `json:"commits"`
	VerifiedActions int        `json:"verified_actions"`
	FirstAction     *time.Time `json:"first_action"`
	LastAction      *time.Time `json:"last_action"`
}

// IdentityResponse is the public record of an identity: no private key, no
// sealed seed.
type IdentityResponse struct {
	IdentityID string            `json:"identity_id"`
	PublicKey  string            `json:"public_key"` // base64
	Created    time.Time         `json:"created"`
	Score      int               `json:"score"`
	Tier       string            `json:"tier"`
	Reputation ReputationInfo    `json:"reputation"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ActionRequest records one verified real-world action.
type ActionRequest struct {
	ActionType string         `json:"action_type"`
	ActionData map[string]any `json:"action_data,omitempty"`
}

// ActionResponse is the persisted signed action record.
type ActionResponse struct {
	ActionID   string         `json:"action_id"`
	IdentityID string         `json:"identity_id"`
	ActionType string         `json:"action_type"`
	Score      int            `json:"score"`
	Envelope   SignedEnvelope `json:"envelope"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ActionsListResponse wraps an identity's recent action records, newest
// first.
type ActionsListResponse struct {
	Actions []ActionResponse `json:"actions"`
}

// TOTPEnrolResponse is returned when enrolling a TOTP factor.
type TOTPEnrolResponse struct {
	Secret string `json:"secret"` // base32
	URL    string `json:"url"`    // otpauth:// URL for QR generation
}

// ChallengeResponse starts a challenge-response handshake.
type ChallengeResponse struct {
	Challenge string    `json:"challenge"` // hex
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RespondRequest asks the service to answer a challenge with a server-held
// identity's key.
type RespondRequest struct {
	Challenge string `json:"challenge"` // hex
	SessionID string `json:"session_id"`
}

// VerifyRequest submits a handshake response for verification.
type VerifyRequest struct {
	SessionID string         `json:"session_id"`
	Response  SignedEnvelope `json:"response"`
}

// VerifyResponse reports the handshake outcome. On success it carries a
// short-lived bearer session token bound to the identity and its tier.
type VerifyResponse struct {
	Valid        bool   `json:"valid"`
	Reason       string `json:"reason,omitempty"`
	IdentityID   string `json:"identity_id,omitempty"`
	Score        int    `json:"score,omitempty"`
	Tier         string `json:"tier,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"` // seconds
}

// PoWCreateRequest asks a server-held identity to run a proof-of-work
// search.
type PoWCreateRequest struct {
	Difficulty int `json:"difficulty"`
}

// MultiFactorCreateRequest selects factors for a server-held identity's
// multi-factor bundle.
type MultiFactorCreateRequest struct {
	Challenge         string `json:"challenge,omitempty"` // hex
	PoWDifficulty     int    `json:"pow_difficulty,omitempty"`
	IncludeTimeProof  bool   `json:"include_time_proof,omitempty"`
	IncludeReputation bool   `json:"include_reputation,omitempty"`
	IncludeTOTP       bool   `json:"include_totp,omitempty"`
}

// OwnershipVerifyRequest verifies an ownership proof against the challenge
// it was issued for.
type OwnershipVerifyRequest struct {
	IdentityID string         `json:"identity_id"`
	Challenge  string         `json:"challenge"` // hex
	Proof      SignedEnvelope `json:"proof"`
}

// PoWVerifyRequest verifies a proof-of-work envelope at a minimum
// difficulty.
type PoWVerifyRequest struct {
	MinDifficulty int            `json:"min_difficulty"`
	Proof         SignedEnvelope `json:"proof"`
}

// MultiFactorVerifyRequest verifies a multi-factor bundle against the
// verifier's expectations.
type MultiFactorVerifyRequest struct {
	Challenge     string         `json:"challenge,omitempty"` // hex
	MinDifficulty int            `json:"min_difficulty,omitempty"`
	Proof         SignedEnvelope `json:"proof"`
}

// ProofVerifyResponse is the outcome of a single-proof verification.
type ProofVerifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// MultiFactorVerifyResponse lists which factors verified.
type MultiFactorVerifyResponse struct {
	Valid   bool     `json:"valid"`
	Factors []string `json:"factors,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// Window reports one sub-bucket of an admission decision.
type Window struct {
	Remaining int       `json:"remaining"` // -1 for unlimited
	Limit     int       `json:"limit"`     // -1 for unlimited
	ResetAt   time.Time `json:"reset_at"`
}

// AdmissionCheckRequest asks for an admission decision. Tier is optional;
// when empty the service derives it from the identity's current score.
type AdmissionCheckRequest struct {
	IdentityID string `json:"identity_id"`
	Tier       string `json:"tier,omitempty"`
}

// AdmissionDecision is the structured outcome of an admission check. A
// rejection is a normal decision, not an HTTP error.
type AdmissionDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Tier    string `json:"tier"`
	Hourly  Window `json:"hourly"`
	Daily   Window `json:"daily"`
}

// AdmissionResetRequest refills an identity's buckets to full.
type AdmissionResetRequest struct {
	IdentityID string `json:"identity_id"`
}

// AdmissionCustomRequest installs an operator override bucket.
type AdmissionCustomRequest struct {
	IdentityID      string `json:"identity_id"`
	RequestsPerHour int    `json:"requests_per_hour"`
	RequestsPerDay  int    `json:"requests_per_day"`
}
