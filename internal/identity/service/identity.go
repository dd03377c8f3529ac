package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/pkg/cryptox"
	"github.com/Soulfra/agent-router-sub005/pkg/idx"
)

// Identity is a keypair plus a local reputation ledger. It is the only
// component that mutates reputation counters; everything it emits is a
// signed envelope carrying its public key.
//
// An Identity loaded from a public record only (no private key) can still
// report its score, but every signing operation returns ErrNoPrivateKey.
type Identity struct {
	keys *cryptox.KeyPair

	ID        string
	CreatedAt time.Time
	Metadata  map[string]string

	mu         sync.Mutex
	reputation domain.Reputation
	totpSecret string

	// now is the clock, swappable in tests.
	now func() time.Time
}

// NewIdentity generates a fresh keypair and an empty reputation ledger.
func NewIdentity() (*Identity, error) {
	kp, err := cryptox.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return &Identity{
		keys:      kp,
		ID:        cryptox.IdentityID(kp.Public),
		CreatedAt: time.Now().UTC(),
		Metadata:  map[string]string{},
		now:       time.Now,
	}, nil
}

// IdentityFromSeed rebuilds a signing identity from its private seed and
// persisted state.
func IdentityFromSeed(seed []byte, createdAt time.Time, rep domain.Reputation) (*Identity, error) {
	kp, err := cryptox.KeyPairFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return &Identity{
		keys:       kp,
		ID:         cryptox.IdentityID(kp.Public),
		CreatedAt:  createdAt.UTC(),
		Metadata:   map[string]string{},
		reputation: rep,
		now:        time.Now,
	}, nil
}

// IdentityFromRecord rebuilds an identity from its persisted record. If the
// record carries no seed the identity is verification-only.
func IdentityFromRecord(rec domain.Record, seed []byte) (*Identity, error) {
	var kp *cryptox.KeyPair
	var err error
	if seed != nil {
		kp, err = cryptox.KeyPairFromSeed(seed)
	} else {
		kp, err = cryptox.PublicOnly(rec.PublicKey)
	}
	if err != nil {
		return nil, err
	}

	id := cryptox.IdentityID(kp.Public)
	if rec.ID != "" && rec.ID != id {
		return nil, fmt.Errorf("identity record id %q does not match key-derived id %q", rec.ID, id)
	}

	meta := rec.Metadata
	if meta == nil {
		meta = map[string]string{}
	}

	return &Identity{
		keys:       kp,
		ID:         id,
		CreatedAt:  rec.CreatedAt.UTC(),
		Metadata:   meta,
		reputation: rec.Reputation,
		totpSecret: rec.TOTPSecret,
		now:        time.Now,
	}, nil
}

// IdentityFromJSON restores an identity from its exported JSON form.
func IdentityFromJSON(data []byte) (*Identity, error) {
	var exp domain.ExportedIdentity
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("parse identity json: %w", err)
	}

	seed, err := base64.StdEncoding.DecodeString(exp.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}

	id, err := IdentityFromSeed(seed, exp.Created, domain.Reputation{
		Commits:         exp.Reputation.Commits,
		VerifiedActions: exp.Reputation.VerifiedActions,
		FirstAction:     exp.Reputation.FirstAction,
		LastAction:      exp.Reputation.LastAction,
	})
	if err != nil {
		return nil, err
	}
	if exp.Metadata != nil {
		id.Metadata = exp.Metadata
	}
	return id, nil
}

// ToJSON exports the identity, private key included, in the persisted
// shape. This is the only place the private key ever leaves the process;
// proofs never carry it.
func (id *Identity) ToJSON() ([]byte, error) {
	if !id.keys.CanSign() {
		return nil, domain.ErrNoPrivateKey
	}

	id.mu.Lock()
	rep := id.reputation
	id.mu.Unlock()

	exp := domain.ExportedIdentity{
		PrivateKey: base64.StdEncoding.EncodeToString(id.keys.Seed()),
		PublicKey:  base64.StdEncoding.EncodeToString(id.keys.Public),
		Created:    id.CreatedAt,
		Metadata:   id.Metadata,
		Reputation: domain.ExportedReputation{
			Commits:         rep.Commits,
			VerifiedActions: rep.VerifiedActions,
			FirstAction:     rep.FirstAction,
			LastAction:      rep.LastAction,
		},
	}
	return json.Marshal(exp)
}

// PublicKey returns the raw Ed25519 public key.
func (id *Identity) PublicKey() []byte { return id.keys.Public }

// CanSign reports whether the identity holds its private key.
func (id *Identity) CanSign() bool { return id.keys.CanSign() }

// Seed returns the private seed for sealing at rest, nil if absent.
func (id *Identity) Seed() []byte { return id.keys.Seed() }

// Reputation returns a copy of the current ledger counters.
func (id *Identity) Reputation() domain.Reputation {
	id.mu.Lock()
	defer id.mu.Unlock()
	return id.reputation
}

// RecordAction applies one verified real-world action to the ledger and
// returns a signed action record embedding a freshly computed score
// snapshot. This is the sole mutator of the reputation ledger. Calling it
// twice for the same real-world action inflates reputation; deduplication
// is the caller's responsibility.
func (id *Identity) RecordAction(actionType string, actionData map[string]any) (domain.ActionRecord, error) {
	if !id.keys.CanSign() {
		return domain.ActionRecord{}, domain.ErrNoPrivateKey
	}

	now := id.now().UTC()

	id.mu.Lock()
	id.reputation.VerifiedActions++
	if actionType == domain.ActionTypeCodeCommit {
		id.reputation.Commits++
	}
	if id.reputation.FirstAction == nil {
		t := now
		id.reputation.FirstAction = &t
	}
	t := now
	id.reputation.LastAction = &t
	score := id.scoreLocked(now)
	id.mu.Unlock()

	env, err := signEnvelope(id.keys, domain.ActionPayload{
		IdentityID: id.ID,
		ActionType: actionType,
		ActionData: actionData,
		Score:      score,
		Timestamp:  now.UnixMilli(),
	}, domain.ProofTypeAction, now)
	if err != nil {
		return domain.ActionRecord{}, err
	}

	return domain.ActionRecord{
		ID:         idx.New().String(),
		IdentityID: id.ID,
		ActionType: actionType,
		Score:      score,
		Envelope:   env,
		CreatedAt:  now,
	}, nil
}

// Score computes the current reputation score from the ledger. Pure
// recomputation on every call; no cached score exists anywhere.
func (id *Identity) Score() int {
	id.mu.Lock()
	defer id.mu.Unlock()
	return id.scoreLocked(id.now().UTC())
}

func (id *Identity) scoreLocked(now time.Time) int {
	return ReputationScore(
		AccountAgeDays(id.CreatedAt, now),
		id.reputation.VerifiedActions,
		id.reputation.Commits,
	)
}

// Snapshot returns the reputation snapshot used inside multi-factor proofs.
func (id *Identity) Snapshot() domain.ReputationSnapshot {
	now := id.now().UTC()

	id.mu.Lock()
	defer id.mu.Unlock()
	return domain.ReputationSnapshot{
		Score:           id.scoreLocked(now),
		Commits:         id.reputation.Commits,
		VerifiedActions: id.reputation.VerifiedActions,
		AccountAgeDays:  AccountAgeDays(id.CreatedAt, now),
	}
}

// TOTPSecret returns the enrolled TOTP secret, empty if none.
func (id *Identity) TOTPSecret() string {
	id.mu.Lock()
	defer id.mu.Unlock()
	return id.totpSecret
}

// SetTOTPSecret enrols (or clears) a TOTP secret for the multi-factor
// TOTP factor.
func (id *Identity) SetTOTPSecret(secret string) {
	id.mu.Lock()
	defer id.mu.Unlock()
	id.totpSecret = secret
}

// Record renders the identity as a persistable record. The sealed seed is
// attached by the caller that owns the sealing passphrase.
func (id *Identity) Record() domain.Record {
	id.mu.Lock()
	defer id.mu.Unlock()
	return domain.Record{
		ID:         id.ID,
		PublicKey:  append([]byte(nil), id.keys.Public...),
		CreatedAt:  id.CreatedAt,
		Reputation: id.reputation,
		TOTPSecret: id.totpSecret,
		Metadata:   id.Metadata,
	}
}
