package service

import (
	"context"
	"encoding/json"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

// MultiFactorOptions selects which factors to compose into a bundle.
// At least one factor must be selected.
type MultiFactorOptions struct {
	// Challenge (hex) includes an ownership proof over it when non-empty.
	Challenge string
	// PoWDifficulty includes a proof of work at this difficulty when >= 1.
	PoWDifficulty int
	// IncludeTimeProof includes an account-age attestation.
	IncludeTimeProof bool
	// IncludeReputation includes a reputation score snapshot.
	IncludeReputation bool
	// IncludeTOTP includes a current TOTP code from the enrolled secret.
	IncludeTOTP bool
}

// MultiFactorExpectation is the verifier's side of the bundle: what each
// included factor must satisfy.
type MultiFactorExpectation struct {
	// Challenge (hex) the ownership factor must echo, when present.
	Challenge string
	// MinDifficulty the PoW factor must meet, when present.
	MinDifficulty int
	// TOTPSecret validates the TOTP factor, when present.
	TOTPSecret string
}

// MultiFactorResult reports which factors verified, or why the bundle was
// rejected.
type MultiFactorResult struct {
	Valid   bool     `json:"valid"`
	Factors []string `json:"factors,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// Multi-factor rejection reasons.
const (
	mfReasonNoFactors      = "no_factors"
	mfReasonOuterSignature = "invalid_outer_signature"
	mfReasonBinding        = "factor_binding_mismatch"
	mfReasonOwnership      = "ownership_invalid"
	mfReasonPoW            = "pow_invalid"
	mfReasonTimeProof      = "time_proof_invalid"
	mfReasonTOTP           = "totp_invalid"
)

// CreateMultiFactorProof composes the selected factors and wraps them in
// one outer signature. The outer signature binds every included factor to
// this bundle, so a factor cannot be extracted and replayed inside a
// different one.
func (id *Identity) CreateMultiFactorProof(ctx context.Context, opts MultiFactorOptions) (domain.SignedEnvelope, error) {
	if !id.keys.CanSign() {
		return domain.SignedEnvelope{}, domain.ErrNoPrivateKey
	}

	now := id.now().UTC()
	payload := domain.MultiFactorPayload{
		IdentityID: id.ID,
		Timestamp:  now.UnixMilli(),
	}

	if opts.Challenge != "" {
		proof, err := id.CreateProof(opts.Challenge)
		if err != nil {
			return domain.SignedEnvelope{}, err
		}
		payload.Ownership = &proof.Proof
	}

	if opts.PoWDifficulty >= 1 {
		pow, err := id.CreateProofOfWork(ctx, opts.PoWDifficulty)
		if err != nil {
			return domain.SignedEnvelope{}, err
		}
		payload.ProofOfWork = &pow
	}

	if opts.IncludeTimeProof {
		tp, err := id.CreateTimeProof()
		if err != nil {
			return domain.SignedEnvelope{}, err
		}
		payload.TimeProof = &tp
	}

	if opts.IncludeReputation {
		snap := id.Snapshot()
		payload.Reputation = &snap
	}

	if opts.IncludeTOTP {
		code, err := id.CurrentTOTPCode()
		if err != nil {
			return domain.SignedEnvelope{}, err
		}
		payload.TOTPCode = code
	}

	return signEnvelope(id.keys, payload, domain.ProofTypeMultiFactor, now)
}

// VerifyMultiFactorProof checks the outer signature, the binding of every
// inner factor to the outer signer, and each included factor against the
// expectation. Fails closed: any malformed field rejects the bundle.
func VerifyMultiFactorProof(env domain.SignedEnvelope, expect MultiFactorExpectation) MultiFactorResult {
	if !VerifyEnvelope(env) {
		return MultiFactorResult{Valid: false, Reason: mfReasonOuterSignature}
	}

	var payload domain.MultiFactorPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return MultiFactorResult{Valid: false, Reason: mfReasonOuterSignature}
	}

	var factors []string

	if payload.Ownership != nil {
		if payload.Ownership.PublicKey != env.PublicKey {
			return MultiFactorResult{Valid: false, Reason: mfReasonBinding}
		}
		proof := domain.OwnershipProof{
			IdentityID: payload.IdentityID,
			Proof:      *payload.Ownership,
			Challenge:  expect.Challenge,
		}
		if !VerifyProof(proof, expect.Challenge) {
			return MultiFactorResult{Valid: false, Reason: mfReasonOwnership}
		}
		factors = append(factors, "ownership")
	}

	if payload.ProofOfWork != nil {
		if payload.ProofOfWork.PublicKey != env.PublicKey {
			return MultiFactorResult{Valid: false, Reason: mfReasonBinding}
		}
		var work domain.ProofOfWorkPayload
		if err := json.Unmarshal(payload.ProofOfWork.Data, &work); err != nil || work.IdentityID != payload.IdentityID {
			return MultiFactorResult{Valid: false, Reason: mfReasonBinding}
		}
		if !VerifyProofOfWork(*payload.ProofOfWork, expect.MinDifficulty) {
			return MultiFactorResult{Valid: false, Reason: mfReasonPoW}
		}
		factors = append(factors, "pow")
	}

	if payload.TimeProof != nil {
		if payload.TimeProof.PublicKey != env.PublicKey {
			return MultiFactorResult{Valid: false, Reason: mfReasonBinding}
		}
		var tp domain.TimeProofPayload
		if err := json.Unmarshal(payload.TimeProof.Data, &tp); err != nil || tp.IdentityID != payload.IdentityID {
			return MultiFactorResult{Valid: false, Reason: mfReasonBinding}
		}
		if !VerifyTimeProof(*payload.TimeProof) {
			return MultiFactorResult{Valid: false, Reason: mfReasonTimeProof}
		}
		factors = append(factors, "time")
	}

	if payload.Reputation != nil {
		// Snapshot is informational; the outer signature already covers it.
		factors = append(factors, "reputation")
	}

	if payload.TOTPCode != "" {
		if !ValidateTOTPCode(expect.TOTPSecret, payload.TOTPCode) {
			return MultiFactorResult{Valid: false, Reason: mfReasonTOTP}
		}
		factors = append(factors, "totp")
	}

	if len(factors) == 0 {
		return MultiFactorResult{Valid: false, Reason: mfReasonNoFactors}
	}

	return MultiFactorResult{Valid: true, Factors: factors}
}
