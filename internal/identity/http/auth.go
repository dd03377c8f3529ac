package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/internal/identity/service"
	"github.com/Soulfra/agent-router-sub005/pkg/cryptox"
	"github.com/Soulfra/agent-router-sub005/pkg/httpx"
	"github.com/Soulfra/agent-router-sub005/pkg/identsdk"
	"github.com/Soulfra/agent-router-sub005/pkg/jwtx"
	"github.com/Soulfra/agent-router-sub005/pkg/slogx"
)

type AuthHandler struct {
	Identities *service.IdentityService
	Challenges *service.ChallengeRegistry
	Signer     jwtx.Signer
	Issuer     string
}

// HandleChallenge godoc
//
//	@Summary		Begin auth handshake
//	@Description	Issues a fresh random challenge bound to a new session id. The
//	@Description	challenge is single-use and expires after five minutes.
//	@Tags			Auth
//	@Produce		json
//	@Success		201	{object}	identsdk.ChallengeResponse
//	@Failure		500	{object}	identsdk.APIError
//	@Router			/v1/auth/challenge [post].
func (h *AuthHandler) HandleChallenge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	ch, err := h.Challenges.Issue()
	if err != nil {
		log.Error("challenge issue failed", "err", err)
		identsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identsdk.ChallengeResponse{
		Challenge: ch.Challenge,
		SessionID: ch.SessionID,
		ExpiresAt: ch.ExpiresAt,
	})
}

// HandleVerify godoc
//
//	@Summary		Verify auth response
//	@Description	Verifies a handshake response against the issued challenge. The
//	@Description	challenge is consumed whatever the outcome, so every attempt needs a
//	@Description	fresh handshake. On success a short-lived EdDSA session token is
//	@Description	minted carrying the identity's current score and tier.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.VerifyRequest	true	"session id and signed response"
//	@Success		200		{object}	identsdk.VerifyResponse
//	@Failure		400		{object}	identsdk.APIError
//	@Failure		404		{object}	identsdk.APIError	"identity not registered"
//	@Router			/v1/auth/verify [post].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		identsdk.ErrInvalidRequest.WithDescription("session_id and response are required").WriteError(w)
		return
	}

	ch, ok := h.Challenges.Take(req.SessionID)
	if !ok {
		// Unknown, expired or already-consumed session.
		httpx.WriteJSON(w, http.StatusOK, identsdk.VerifyResponse{
			Valid:  false,
			Reason: string(domain.AuthFailSessionMismatch),
		})
		return
	}

	env := fromSDKEnvelope(req.Response)
	result := service.VerifyAuthResponse(env, ch)
	if !result.Valid {
		httpx.WriteJSON(w, http.StatusOK, identsdk.VerifyResponse{
			Valid:  false,
			Reason: string(result.Reason),
		})
		return
	}

	var payload domain.AuthResponsePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		identsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	rec, err := h.Identities.Get(ctx, payload.IdentityID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			identsdk.ErrIdentityNotFound.WriteError(w)
			return
		}
		log.Error("identity lookup failed", "identity_id", payload.IdentityID, "err", err)
		identsdk.ErrServerError.WriteError(w)
		return
	}

	// The signature proves possession of the envelope's key; the claimed
	// identity id must belong to that same key.
	if base64.StdEncoding.EncodeToString(rec.PublicKey) != env.PublicKey {
		httpx.WriteJSON(w, http.StatusOK, identsdk.VerifyResponse{
			Valid:  false,
			Reason: string(domain.AuthFailInvalidSignature),
		})
		return
	}

	now := time.Now().UTC()
	score := service.ReputationScore(
		service.AccountAgeDays(rec.CreatedAt, now),
		rec.Reputation.VerifiedActions,
		rec.Reputation.Commits,
	)
	tier := domain.TierForScore(score)

	token, err := h.Signer.Sign(jwtx.NewSessionClaims(
		rec.ID, tier.Name, score, []string{"ownership"},
		h.Issuer, jwtx.DefaultSessionTTL, now,
	))
	if err != nil {
		log.Error("session token mint failed", "identity_id", rec.ID, "err", err)
		identsdk.ErrServerError.WriteError(w)
		return
	}

	// Log a fingerprint of the minted token, never the token itself.
	log.Info("handshake verified",
		"identity_id", rec.ID,
		"tier", tier.Name,
		"score", score,
		"token_fp", cryptox.FingerprintToken(token),
	)

	httpx.WriteJSON(w, http.StatusOK, identsdk.VerifyResponse{
		Valid:        true,
		IdentityID:   rec.ID,
		Score:        score,
		Tier:         tier.Name,
		SessionToken: token,
		ExpiresIn:    int(jwtx.DefaultSessionTTL.Seconds()),
	})
}
