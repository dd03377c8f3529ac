package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/internal/identity/service"
	"github.com/Soulfra/agent-router-sub005/pkg/httpx"
	"github.com/Soulfra/agent-router-sub005/pkg/identsdk"
	"github.com/Soulfra/agent-router-sub005/pkg/slogx"
)

// ProofsHandler exposes verifier-side endpoints. Verification is pure and
// fail-closed: malformed proofs come back valid=false, never an HTTP 500.
type ProofsHandler struct {
	Identities *service.IdentityService
}

// HandleOwnership godoc
//
//	@Summary		Verify ownership proof
//	@Description	Checks an ownership proof against the challenge it answers: the
//	@Description	signed payload must echo the exact challenge and the signature must
//	@Description	verify under the embedded public key.
//	@Tags			Proofs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.OwnershipVerifyRequest	true	"proof and original challenge"
//	@Success		200		{object}	identsdk.ProofVerifyResponse
//	@Failure		400		{object}	identsdk.APIError
//	@Router			/v1/proofs/ownership/verify [post].
func (h *ProofsHandler) HandleOwnership(w http.ResponseWriter, r *http.Request) {
	var req identsdk.OwnershipVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Challenge == "" {
		identsdk.ErrInvalidRequest.WithDescription("challenge and proof are required").WriteError(w)
		return
	}

	proof := domain.OwnershipProof{
		IdentityID: req.IdentityID,
		Proof:      fromSDKEnvelope(req.Proof),
		Challenge:  req.Challenge,
	}

	resp := identsdk.ProofVerifyResponse{Valid: service.VerifyProof(proof, req.Challenge)}
	if !resp.Valid {
		resp.Reason = "ownership_invalid"
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleProofOfWork godoc
//
//	@Summary		Verify proof of work
//	@Description	Recomputes the hash from the proof's embedded fields and checks it
//	@Description	meets the minimum difficulty. A proof computed at difficulty d
//	@Description	verifies at any min_difficulty <= d.
//	@Tags			Proofs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.PoWVerifyRequest	true	"proof and minimum difficulty"
//	@Success		200		{object}	identsdk.ProofVerifyResponse
//	@Failure		400		{object}	identsdk.APIError
//	@Router			/v1/proofs/pow/verify [post].
func (h *ProofsHandler) HandleProofOfWork(w http.ResponseWriter, r *http.Request) {
	var req identsdk.PoWVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		identsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.MinDifficulty < 1 {
		req.MinDifficulty = 1
	}

	resp := identsdk.ProofVerifyResponse{
		Valid: service.VerifyProofOfWork(fromSDKEnvelope(req.Proof), req.MinDifficulty),
	}
	if !resp.Valid {
		resp.Reason = "pow_invalid"
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleMultiFactor godoc
//
//	@Summary		Verify multi-factor proof
//	@Description	Checks the outer signature, the binding of each inner factor to the
//	@Description	outer signer, and every included factor. The TOTP factor is checked
//	@Description	against the secret enrolled for the bundle's identity.
//	@Tags			Proofs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.MultiFactorVerifyRequest	true	"bundle and expectations"
//	@Success		200		{object}	identsdk.MultiFactorVerifyResponse
//	@Failure		400		{object}	identsdk.APIError
//	@Router			/v1/proofs/multifactor/verify [post].
func (h *ProofsHandler) HandleMultiFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.MultiFactorVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		identsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	env := fromSDKEnvelope(req.Proof)

	// The TOTP expectation comes from the enrolled secret of whichever
	// identity the bundle claims. An unknown identity leaves the secret
	// empty, so an included TOTP factor fails closed.
	var totpSecret string
	var payload domain.MultiFactorPayload
	if err := json.Unmarshal(env.Data, &payload); err == nil && payload.IdentityID != "" {
		rec, err := h.Identities.Get(ctx, payload.IdentityID)
		switch {
		case err == nil:
			totpSecret = rec.TOTPSecret
		case !errors.Is(err, domain.ErrIdentityNotFound):
			log.Warn("identity lookup for totp expectation failed",
				"identity_id", payload.IdentityID, "err", err)
		}
	}

	result := service.VerifyMultiFactorProof(env, service.MultiFactorExpectation{
		Challenge:     req.Challenge,
		MinDifficulty: req.MinDifficulty,
		TOTPSecret:    totpSecret,
	})

	httpx.WriteJSON(w, http.StatusOK, identsdk.MultiFactorVerifyResponse{
		Valid:   result.Valid,
		Factors: result.Factors,
		Reason:  result.Reason,
	})
}
