package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/internal/identity/service"
	"github.com/Soulfra/agent-router-sub005/internal/identity/store"
	"github.com/Soulfra/agent-router-sub005/pkg/httpx"
	"github.com/Soulfra/agent-router-sub005/pkg/identsdk"
	"github.com/Soulfra/agent-router-sub005/pkg/slogx"
)

type IdentityHandler struct {
	Identities *service.IdentityService
}

// HandleCreate godoc
//
//	@Summary		Create identity
//	@Description	Generates a fresh Ed25519 identity. The private seed is sealed and
//	@Description	held server-side; the response additionally contains the exported
//	@Description	identity JSON including the private key, for client-side custody.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.CreateIdentityRequest	false	"optional metadata"
//	@Success		201		{object}	identsdk.CreateIdentityResponse
//	@Failure		400		{object}	identsdk.APIError
//	@Failure		500		{object}	identsdk.APIError
//	@Router			/v1/identity [post].
func (h *IdentityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.CreateIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		identsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	id, err := h.Identities.Create(ctx, req.Metadata)
	if err != nil {
		log.Error("identity create failed", "err", err)
		identsdk.ErrServerError.WriteError(w)
		return
	}

	exported, err := id.ToJSON()
	if err != nil {
		log.Error("identity export failed", "identity_id", id.ID, "err", err)
		identsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identsdk.CreateIdentityResponse{
		IdentityID: id.ID,
		Identity:   exported,
	})
}

// HandleGet godoc
//
//	@Summary		Get identity
//	@Description	Returns the public record of an identity: public key, creation time,
//	@Description	reputation ledger, current score and tier. Never the private key.
//	@Tags			Identity
//	@Produce		json
//	@Param			id	path		string	true	"identity id"
//	@Success		200	{object}	identsdk.IdentityResponse
//	@Failure		404	{object}	identsdk.APIError
//	@Router			/v1/identity/{id} [get].
func (h *IdentityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.Identities.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toIdentityResponse(rec, time.Now().UTC()))
}

// HandleRecordAction godoc
//
//	@Summary		Record verified action
//	@Description	Applies one verified real-world action to the identity's reputation
//	@Description	ledger and returns the signed action record. Submitting the same
//	@Description	real-world action twice counts it twice.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"identity id"
//	@Param			request	body		identsdk.ActionRequest	true	"action type and data"
//	@Success		201		{object}	identsdk.ActionResponse
//	@Failure		400		{object}	identsdk.APIError
//	@Failure		404		{object}	identsdk.APIError
//	@Failure		409		{object}	identsdk.APIError	"identity key held externally"
//	@Router			/v1/identity/{id}/actions [post].
func (h *IdentityHandler) HandleRecordAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req identsdk.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActionType == "" {
		identsdk.ErrInvalidRequest.WithDescription("action_type is required").WriteError(w)
		return
	}

	action, err := h.Identities.RecordAction(ctx, r.PathValue("id"), req.ActionType, req.ActionData)
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toActionResponse(action))
}

// HandleListActions godoc
//
//	@Summary		List recorded actions
//	@Description	Returns the identity's most recent signed action records, newest
//	@Description	first. Limit is clamped to 100.
//	@Tags			Identity
//	@Produce		json
//	@Param			id		path		string	true	"identity id"
//	@Param			limit	query		int		false	"maximum records to return"
//	@Success		200		{object}	identsdk.ActionsListResponse
//	@Failure		404		{object}	identsdk.APIError
//	@Router			/v1/identity/{id}/actions [get].
func (h *IdentityHandler) HandleListActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	// A listing for an unknown identity should 404, not return empty.
	if _, err := h.Identities.Get(ctx, r.PathValue("id")); err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	actions, err := h.Identities.ListActions(ctx, r.PathValue("id"), limit)
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	out := identsdk.ActionsListResponse{Actions: make([]identsdk.ActionResponse, 0, len(actions))}
	for _, a := range actions {
		out.Actions = append(out.Actions, toActionResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleEnrollTOTP godoc
//
//	@Summary		Enrol TOTP factor
//	@Description	Generates and persists a TOTP secret so multi-factor proofs can
//	@Description	include a TOTP code. Re-enrolling replaces the previous secret.
//	@Tags			Identity
//	@Produce		json
//	@Param			id	path		string	true	"identity id"
//	@Success		201	{object}	identsdk.TOTPEnrolResponse
//	@Failure		404	{object}	identsdk.APIError
//	@Router			/v1/identity/{id}/totp [post].
func (h *IdentityHandler) HandleEnrollTOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	enrolment, err := h.Identities.EnrollTOTP(ctx, r.PathValue("id"))
	if err != nil {
		writeIdentityError(w, ctx, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identsdk.TOTPEnrolResponse{
		Secret: enrolment.Secret,
		URL:    enrolment.URL,
	})
}

// writeIdentityError maps service errors to API error responses.
func writeIdentityError(w http.ResponseWriter, ctx context.Context, err error) {
	log := slogx.FromContext(ctx)
	switch {
	case errors.Is(err, domain.ErrIdentityNotFound):
		identsdk.ErrIdentityNotFound.WriteError(w)
	case errors.Is(err, store.ErrAlreadyExists):
		identsdk.ErrIdentityExists.WriteError(w)
	case errors.Is(err, domain.ErrNoPrivateKey):
		identsdk.ErrNoPrivateKey.WriteError(w)
	case errors.Is(err, domain.ErrTOTPNotEnrolled):
		identsdk.ErrTOTPNotEnrolled.WriteError(w)
	default:
		log.Error("identity operation failed", "err", err)
		identsdk.ErrServerError.WriteError(w)
	}
}
