package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/internal/identity/store"
	"github.com/Soulfra/agent-router-sub005/pkg/cryptox"
)

// IdentityService persists identities and their action ledgers. Private
// seeds are sealed with the service passphrase before they touch the
// database; identities registered with an external public key carry no
// seed at all and can only be verified, never signed for.
type IdentityService struct {
	Store          store.Store
	Logger         *slog.Logger
	SealPassphrase string
	TOTPIssuer     string
}

// Create generates a fresh identity, seals its seed and persists the
// record. The returned identity holds the live private key.
func (s *IdentityService) Create(ctx context.Context, metadata map[string]string) (*Identity, error) {
	id, err := NewIdentity()
	if err != nil {
		return nil, fmt.Errorf("generate identity: %w", err)
	}
	if metadata != nil {
		id.Metadata = metadata
	}

	sealed, err := cryptox.SealSeed(id.Seed(), s.SealPassphrase)
	if err != nil {
		return nil, fmt.Errorf("seal seed: %w", err)
	}

	rec := id.Record()
	rec.SealedSeed = sealed

	if err := s.Store.Identities().CreateIdentity(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist identity: %w", err)
	}

	s.Logger.InfoContext(ctx, "identity created", "identity_id", id.ID)
	return id, nil
}

// Register persists an identity for an externally held Ed25519 public key.
// No seed is stored, so the service can verify this identity's proofs but
// never sign on its behalf.
func (s *IdentityService) Register(ctx context.Context, publicKey []byte, metadata map[string]string) (*Identity, error) {
	rec := domain.Record{
		PublicKey: publicKey,
		CreatedAt: time.Now().UTC(),
		Metadata:  metadata,
	}

	id, err := IdentityFromRecord(rec, nil)
	if err != nil {
		return nil, err
	}
	rec.ID = id.ID

	if err := s.Store.Identities().CreateIdentity(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist identity: %w", err)
	}

	s.Logger.InfoContext(ctx, "identity registered", "identity_id", id.ID)
	return id, nil
}

// Load fetches an identity and, when a sealed seed is present, opens it so
// the returned identity can sign. Identities without a seed come back
// verification-only.
func (s *IdentityService) Load(ctx context.Context, identityID string) (*Identity, error) {
	rec, err := s.Store.Identities().GetIdentity(ctx, identityID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}

	var seed []byte
	if rec.SealedSeed != nil {
		seed, err = cryptox.OpenSeed(rec.SealedSeed, s.SealPassphrase)
		if err != nil {
			return nil, fmt.Errorf("open sealed seed: %w", err)
		}
	}

	return IdentityFromRecord(rec, seed)
}

// Get fetches the persisted record without opening the seed.
func (s *IdentityService) Get(ctx context.Context, identityID string) (domain.Record, error) {
	rec, err := s.Store.Identities().GetIdentity(ctx, identityID)
	if err == store.ErrNotFound {
		return domain.Record{}, domain.ErrIdentityNotFound
	}
	return rec, err
}

// RecordAction applies one verified action to the identity's ledger and
// persists both the updated counters and the signed action record in a
// single transaction. The counter update increments in place inside the
// store, so concurrent calls for the same identity each land their own
// increment instead of overwriting one another's.
func (s *IdentityService) RecordAction(ctx context.Context, identityID, actionType string, actionData map[string]any) (domain.ActionRecord, error) {
	id, err := s.Load(ctx, identityID)
	if err != nil {
		return domain.ActionRecord{}, err
	}

	action, err := id.RecordAction(actionType, actionData)
	if err != nil {
		return domain.ActionRecord{}, err
	}

	commitsDelta := 0
	if actionType == domain.ActionTypeCodeCommit {
		commitsDelta = 1
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Identities().ApplyAction(ctx, identityID, commitsDelta, action.CreatedAt); err != nil {
			return err
		}
		return tx.Actions().CreateAction(ctx, action)
	})
	if err != nil {
		return domain.ActionRecord{}, fmt.Errorf("persist action: %w", err)
	}

	s.Logger.InfoContext(ctx, "action recorded",
		"identity_id", identityID,
		"action_type", actionType,
		"score", action.Score,
	)
	return action, nil
}

// ListActions returns the most recent signed action records for an
// identity, newest first.
func (s *IdentityService) ListActions(ctx context.Context, identityID string, limit int) ([]domain.ActionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.Store.Actions().ListActions(ctx, identityID, limit)
}

// EnrollTOTP generates and persists a TOTP secret so the identity can
// include a TOTP factor in multi-factor proofs.
func (s *IdentityService) EnrollTOTP(ctx context.Context, identityID string) (TOTPEnrolment, error) {
	id, err := s.Load(ctx, identityID)
	if err != nil {
		return TOTPEnrolment{}, err
	}

	enrolment, err := id.EnrollTOTP(s.TOTPIssuer)
	if err != nil {
		return TOTPEnrolment{}, err
	}

	if err := s.Store.Identities().SetTOTPSecret(ctx, identityID, enrolment.Secret); err != nil {
		return TOTPEnrolment{}, fmt.Errorf("persist totp secret: %w", err)
	}

	s.Logger.InfoContext(ctx, "totp enrolled", "identity_id", identityID)
	return enrolment, nil
}

// Export returns the portable JSON form of an identity, private key
// included. Only identities whose seed the service holds can be exported.
func (s *IdentityService) Export(ctx context.Context, identityID string) ([]byte, error) {
	id, err := s.Load(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return id.ToJSON()
}

// Import restores an exported identity, sealing its seed and persisting
// the record with its ledger intact.
func (s *IdentityService) Import(ctx context.Context, data []byte) (*Identity, error) {
	id, err := IdentityFromJSON(data)
	if err != nil {
		return nil, err
	}

	sealed, err := cryptox.SealSeed(id.Seed(), s.SealPassphrase)
	if err != nil {
		return nil, fmt.Errorf("seal seed: %w", err)
	}

	rec := id.Record()
	rec.SealedSeed = sealed

	if err := s.Store.Identities().CreateIdentity(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist identity: %w", err)
	}

	s.Logger.InfoContext(ctx, "identity imported", "identity_id", id.ID)
	return id, nil
}
