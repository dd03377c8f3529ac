package domain

import "time"

// Reputation is the denormalized counter ledger behind the score. There is
// deliberately no stored score field: the score is recomputed from these
// counters on every read so it can never drift.
type Reputation struct {
	Commits         int        `json:"commits"`
	VerifiedActions int        `json:"verified_actions"`
	FirstAction     *time.Time `json:"first_action"`
	LastAction      *time.Time `json:"last_action"`
}

// Record is the persisted identity: the public half of the keypair, the
// sealed private seed (nil for identities registered with an external key),
// and the reputation ledger. The id is always derived from the public key,
// never stored independently of it.
type Record struct {
	ID         string
	PublicKey  []byte // raw Ed25519, 32 bytes
	SealedSeed []byte // argon2id+AES-GCM sealed seed, nil if key held externally
	CreatedAt  time.Time
	Reputation Reputation
	TOTPSecret string // base32, empty unless a TOTP factor is enrolled
	Metadata   map[string]string
}

// ActionTypeCodeCommit is the only action type that increments the commits
// counter in addition to verified actions.
const ActionTypeCodeCommit = "code_commit"

// ActionRecord is a persisted, signed record of one verified action together
// with the reputation score snapshot computed right after applying it.
type ActionRecord struct {
	ID         string // ULID
	IdentityID string
	ActionType string
	Score      int // freshly computed snapshot, informational only
	Envelope   SignedEnvelope
	CreatedAt  time.Time
}

// ActionPayload is the signed payload inside an action record envelope.
type ActionPayload struct {
	IdentityID string         `json:"identity_id"`
	ActionType string         `json:"action_type"`
	ActionData map[string]any `json:"action_data,omitempty"`
	Score      int            `json:"score"`
	Timestamp  int64          `json:"timestamp"` // Unix ms
}

// ExportedIdentity is the portable JSON form of an identity, including the
// private key. It exists for identity backup/transfer only and is never
// embedded in any proof object.
type ExportedIdentity struct {
	PrivateKey string             `json:"privateKey"` // base64 32-byte seed
	PublicKey  string             `json:"publicKey"`  // base64
	Created    time.Time          `json:"created"`    // ISO 8601
	Metadata   map[string]string  `json:"metadata"`
	Reputation ExportedReputation `json:"reputation"`
}

// ExportedReputation mirrors Reputation with the persisted snake_case keys.
type ExportedReputation struct {
	Commits         int        `json:"commits"`
	VerifiedActions int        `json:"verified_actions"`
	FirstAction     *time.Time `json:"first_action"`
	LastAction      *time.Time `json:"last_action"`
}
