package service

import (
	"encoding/json"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

// CreateTimeProof signs an attestation of account age. It reveals when the
// identity was created and nothing else, supporting age-based trust
// decisions without exposing the reputation ledger.
func (id *Identity) CreateTimeProof() (domain.SignedEnvelope, error) {
	now := id.now().UTC()
	return signEnvelope(id.keys, domain.TimeProofPayload{
		IdentityID:     id.ID,
		CreatedAt:      id.CreatedAt.UnixMilli(),
		CurrentTime:    now.UnixMilli(),
		AccountAgeDays: AccountAgeDays(id.CreatedAt, now),
	}, domain.ProofTypeTime, now)
}

// VerifyTimeProof checks the envelope signature and the internal
// consistency of the claimed age. Fails closed.
func VerifyTimeProof(env domain.SignedEnvelope) bool {
	var payload domain.TimeProofPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return false
	}
	if payload.CreatedAt > payload.CurrentTime {
		return false
	}
	return VerifyEnvelope(env)
}
