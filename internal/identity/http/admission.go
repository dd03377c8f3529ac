package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/internal/identity/service"
	"github.com/Soulfra/agent-router-sub005/pkg/httpx"
	"github.com/Soulfra/agent-router-sub005/pkg/identsdk"
	"github.com/Soulfra/agent-router-sub005/pkg/slogx"
)

type AdmissionHandler struct {
	Admission  *service.AdmissionController
	Identities *service.IdentityService
}

// HandleCheck godoc
//
//	@Summary		Admission check
//	@Description	Decides whether one operation is admitted for the identity under its
//	@Description	tier. The tier comes from an operator override if one is installed,
//	@Description	the request's tier field if set, or the identity's current score. A
//	@Description	rejection is a 200 with allowed=false, not an HTTP error.
//	@Tags			Admission
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.AdmissionCheckRequest	true	"identity and optional tier"
//	@Success		200		{object}	identsdk.AdmissionDecision
//	@Failure		400		{object}	identsdk.APIError
//	@Failure		404		{object}	identsdk.APIError
//	@Router			/v1/admission/check [post].
func (h *AdmissionHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.AdmissionCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IdentityID == "" {
		identsdk.ErrInvalidRequest.WithDescription("identity_id is required").WriteError(w)
		return
	}

	tier, ok := h.Admission.Override(req.IdentityID)
	if !ok {
		if req.Tier != "" {
			tier, ok = domain.TierByName(req.Tier)
			if !ok {
				identsdk.ErrInvalidRequest.WithDescription("unknown tier: " + req.Tier).WriteError(w)
				return
			}
		} else {
			rec, err := h.Identities.Get(ctx, req.IdentityID)
			if err != nil {
				if errors.Is(err, domain.ErrIdentityNotFound) {
					identsdk.ErrIdentityNotFound.WriteError(w)
					return
				}
				log.Error("identity lookup failed", "identity_id", req.IdentityID, "err", err)
				identsdk.ErrServerError.WriteError(w)
				return
			}
			now := time.Now().UTC()
			score := service.ReputationScore(
				service.AccountAgeDays(rec.CreatedAt, now),
				rec.Reputation.VerifiedActions,
				rec.Reputation.Commits,
			)
			tier = domain.TierForScore(score)
		}
	}

	d := h.Admission.CheckLimit(req.IdentityID, tier)
	httpx.WriteJSON(w, http.StatusOK, identsdk.AdmissionDecision{
		Allowed: d.Allowed,
		Reason:  d.Reason,
		Tier:    d.Tier,
		Hourly:  toSDKWindow(d.Hourly),
		Daily:   toSDKWindow(d.Daily),
	})
}

// HandleReset godoc
//
//	@Summary		Reset admission buckets
//	@Description	Refills both of an identity's buckets to full immediately.
//	@Tags			Admission
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	identsdk.AdmissionResetRequest	true	"identity"
//	@Success		204
//	@Failure		400	{object}	identsdk.APIError
//	@Failure		401	{object}	identsdk.APIError
//	@Router			/v1/admission/reset [post].
func (h *AdmissionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req identsdk.AdmissionResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IdentityID == "" {
		identsdk.ErrInvalidRequest.WithDescription("identity_id is required").WriteError(w)
		return
	}

	h.Admission.Reset(req.IdentityID)
	log.Info("admission buckets reset",
		"identity_id", req.IdentityID,
		"by", httpx.IdentityIDFromContext(r.Context()),
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCustom godoc
//
//	@Summary		Set custom admission limits
//	@Description	Installs an operator override bucket with custom hourly and daily
//	@Description	limits, replacing any existing bucket for the identity.
//	@Tags			Admission
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	identsdk.AdmissionCustomRequest	true	"identity and limits"
//	@Success		204
//	@Failure		400	{object}	identsdk.APIError
//	@Failure		401	{object}	identsdk.APIError
//	@Router			/v1/admission/custom [post].
func (h *AdmissionHandler) HandleCustom(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req identsdk.AdmissionCustomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IdentityID == "" {
		identsdk.ErrInvalidRequest.WithDescription("identity_id is required").WriteError(w)
		return
	}
	if req.RequestsPerHour < 1 || req.RequestsPerDay < 1 {
		identsdk.ErrInvalidRequest.WithDescription("limits must be >= 1").WriteError(w)
		return
	}

	h.Admission.SetCustomLimit(req.IdentityID, req.RequestsPerHour, req.RequestsPerDay)
	log.Info("custom admission limit set",
		"identity_id", req.IdentityID,
		"requests_per_hour", req.RequestsPerHour,
		"requests_per_day", req.RequestsPerDay,
		"by", httpx.IdentityIDFromContext(r.Context()),
	)
	w.WriteHeader(http.StatusNoContent)
}

func toSDKWindow(win domain.Window) identsdk.Window {
	return identsdk.Window{
		Remaining: win.Remaining,
		Limit:     win.Limit,
		ResetAt:   win.ResetAt,
	}
}
