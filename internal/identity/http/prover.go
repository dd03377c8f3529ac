package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Soulfra/agent-router-sub005/internal/identity/service"
	"github.com/Soulfra/agent-router-sub005/pkg/httpx"
	"github.com/Soulfra/agent-router-sub005/pkg/identsdk"
)

// maxPoWDifficulty caps server-side proof-of-work searches. Each extra
// level multiplies the expected hash count by 16; anything past this is a
// CPU-exhaustion request, not a trust signal.
const maxPoWDifficulty = 5

// ProverHandler exposes prover-side operations for identities whose sealed
// seed the service holds. Identities registered with an external key get a
// 409 from every endpoint here.
type ProverHandler struct {
	Identities *service.IdentityService
}

// HandleRespond godoc
//
//	@Summary		Answer auth challenge
//	@Description	Signs a challenge-response for a server-held identity, binding
//	@Description	challenge, session id and identity id under one signature.
//	@Tags			Prover
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"identity id"
//	@Param			request	body		identsdk.RespondRequest	true	"challenge and session id"
//	@Success		200		{object}	identsdk.SignedEnvelope
//	@Failure		400		{object}	identsdk.APIError
//	@Failure		404		{object}	identsdk.APIError
//	@Failure		409		{object}	identsdk.APIError	"identity key held externally"
//	@Router			/v1/identity/{id}/respond [post].
func (h *ProverHandler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req identsdk.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Challenge == "" || req.SessionID == "" {
		identsdk.ErrInvalidRequest.WithDescription("challenge and session_id are required").WriteError(w)
		return
	}

	id, err := h.Identities.Load(ctx, r.PathValue("id"))
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	env, err := id.RespondToChallenge(req.Challenge, req.SessionID)
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKEnvelope(env))
}

// HandleProofOfWork godoc
//
//	@Summary		Create proof of work
//	@Description	Runs the nonce search for a server-held identity and returns the
//	@Description	signed work record. Blocks until the search completes; difficulty
//	@Description	is capped server-side.
//	@Tags			Prover
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"identity id"
//	@Param			request	body		identsdk.PoWCreateRequest	true	"difficulty (1-5)"
//	@Success		200		{object}	identsdk.SignedEnvelope
//	@Failure		400		{object}	identsdk.APIError
//	@Failure		404		{object}	identsdk.APIError
//	@Failure		409		{object}	identsdk.APIError	"identity key held externally"
//	@Router			/v1/identity/{id}/pow [post].
func (h *ProverHandler) HandleProofOfWork(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req identsdk.PoWCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		identsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Difficulty < 1 || req.Difficulty > maxPoWDifficulty {
		identsdk.ErrInvalidRequest.WithDescription("difficulty must be between 1 and 5").WriteError(w)
		return
	}

	id, err := h.Identities.Load(ctx, r.PathValue("id"))
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	env, err := id.CreateProofOfWork(ctx, req.Difficulty)
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKEnvelope(env))
}

// HandleTimeProof godoc
//
//	@Summary		Create time proof
//	@Description	Signs an account-age attestation for a server-held identity.
//	@Tags			Prover
//	@Produce		json
//	@Param			id	path		string	true	"identity id"
//	@Success		200	{object}	identsdk.SignedEnvelope
//	@Failure		404	{object}	identsdk.APIError
//	@Failure		409	{object}	identsdk.APIError	"identity key held externally"
//	@Router			/v1/identity/{id}/timeproof [post].
func (h *ProverHandler) HandleTimeProof(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := h.Identities.Load(ctx, r.PathValue("id"))
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	env, err := id.CreateTimeProof()
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKEnvelope(env))
}

// HandleMultiFactor godoc
//
//	@Summary		Create multi-factor proof
//	@Description	Composes the selected factors (ownership, proof of work, time proof,
//	@Description	reputation snapshot, TOTP code) into one outer-signed bundle.
//	@Tags			Prover
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"identity id"
//	@Param			request	body		identsdk.MultiFactorCreateRequest	true	"factor selection"
//	@Success		200		{object}	identsdk.SignedEnvelope
//	@Failure		400		{object}	identsdk.APIError
//	@Failure		404		{object}	identsdk.APIError
//	@Failure		409		{object}	identsdk.APIError	"no private key or TOTP not enrolled"
//	@Router			/v1/identity/{id}/multifactor [post].
func (h *ProverHandler) HandleMultiFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req identsdk.MultiFactorCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		identsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.PoWDifficulty > maxPoWDifficulty {
		identsdk.ErrInvalidRequest.WithDescription("pow_difficulty must be at most 5").WriteError(w)
		return
	}

	id, err := h.Identities.Load(ctx, r.PathValue("id"))
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	env, err := id.CreateMultiFactorProof(ctx, service.MultiFactorOptions{
		Challenge:         req.Challenge,
		PoWDifficulty:     req.PoWDifficulty,
		IncludeTimeProof:  req.IncludeTimeProof,
		IncludeReputation: req.IncludeReputation,
		IncludeTOTP:       req.IncludeTOTP,
	})
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKEnvelope(env))
}
