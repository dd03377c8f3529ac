package http

import (
	"encoding/base64"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/internal/identity/service"
	"github.com/Soulfra/agent-router-sub005/pkg/identsdk"
)

func toSDKEnvelope(env domain.SignedEnvelope) identsdk.SignedEnvelope {
	return identsdk.SignedEnvelope{
		Data:      env.Data,
		Metadata:  env.Metadata,
		Signature: env.Signature,
		PublicKey: env.PublicKey,
		Timestamp: env.Timestamp,
	}
}

func fromSDKEnvelope(env identsdk.SignedEnvelope) domain.SignedEnvelope {
	return domain.SignedEnvelope{
		Data:      env.Data,
		Metadata:  env.Metadata,
		Signature: env.Signature,
		PublicKey: env.PublicKey,
		Timestamp: env.Timestamp,
	}
}

func toIdentityResponse(rec domain.Record, now time.Time) identsdk.IdentityResponse {
	score := service.ReputationScore(
		service.AccountAgeDays(rec.CreatedAt, now),
		rec.Reputation.VerifiedActions,
		rec.Reputation.Commits,
	)
	return identsdk.IdentityResponse{
		IdentityID: rec.ID,
		PublicKey:  base64.StdEncoding.EncodeToString(rec.PublicKey),
		Created:    rec.CreatedAt,
		Score:      score,
		Tier:       domain.TierForScore(score).Name,
		Reputation: identsdk.ReputationInfo{
			Commits:         rec.Reputation.Commits,
			VerifiedActions: rec.Reputation.VerifiedActions,
			FirstAction:     rec.Reputation.FirstAction,
			LastAction:      rec.Reputation.LastAction,
		},
		Metadata: rec.Metadata,
	}
}

func toActionResponse(rec domain.ActionRecord) identsdk.ActionResponse {
	return identsdk.ActionResponse{
		ActionID:   rec.ID,
		IdentityID: rec.IdentityID,
		ActionType: rec.ActionType,
		Score:      rec.Score,
		Envelope:   toSDKEnvelope(rec.Envelope),
		CreatedAt:  rec.CreatedAt,
	}
}
