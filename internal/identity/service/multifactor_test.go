package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

func TestMultiFactorAllFactors(t *testing.T) {
	t.Parallel()

	id := newTestIdentity(t)
	enrolment, err := id.EnrollTOTP("identityd-test")
	require.NoError(t, err)

	env, err := id.CreateMultiFactorProof(context.Background(), MultiFactorOptions{
		Challenge:         "cafe01",
		PoWDifficulty:     1,
		IncludeTimeProof:  true,
		IncludeReputation: true,
		IncludeTOTP:       true,
	})
	require.NoError(t, err)

	result := VerifyMultiFactorProof(env, MultiFactorExpectation{
		Challenge:     "cafe01",
		MinDifficulty: 1,
		TOTPSecret:    enrolment.Secret,
	})
	require.True(t, result.Valid, "reason: %s", result.Reason)
	require.Equal(t, []string{"ownership", "pow", "time", "reputation", "totp"}, result.Factors)
}

func TestMultiFactorSingleFactor(t *testing.T) {
	t.Parallel()

	id := newTestIdentity(t)

	env, err := id.CreateMultiFactorProof(context.Background(), MultiFactorOptions{
		Challenge: "beef",
	})
	require.NoError(t, err)

	result := VerifyMultiFactorProof(env, MultiFactorExpectation{Challenge: "beef"})
	require.True(t, result.Valid)
	require.Equal(t, []string{"ownership"}, result.Factors)
}

func TestMultiFactorRejectsEmptyBundle(t *testing.T) {
	t.Parallel()

	id := newTestIdentity(t)

	env, err := id.CreateMultiFactorProof(context.Background(), MultiFactorOptions{})
	require.NoError(t, err)

	result := VerifyMultiFactorProof(env, MultiFactorExpectation{})
	require.False(t, result.Valid)
	require.Equal(t, "no_factors", result.Reason)
}

func TestMultiFactorRejectsWrongChallenge(t *testing.T) {
	t.Parallel()

	id := newTestIdentity(t)

	env, err := id.CreateMultiFactorProof(context.Background(), MultiFactorOptions{Challenge: "cafe"})
	require.NoError(t, err)

	result := VerifyMultiFactorProof(env, MultiFactorExpectation{Challenge: "beef"})
	require.False(t, result.Valid)
	require.Equal(t, "ownership_invalid", result.Reason)
}

func TestMultiFactorRejectsOuterTamper(t *testing.T) {
	t.Parallel()

	id := newTestIdentity(t)

	env, err := id.CreateMultiFactorProof(context.Background(), MultiFactorOptions{Challenge: "cafe"})
	require.NoError(t, err)
	env.Signature = "AAAA" + env.Signature[4:]

	result := VerifyMultiFactorProof(env, MultiFactorExpectation{Challenge: "cafe"})
	require.False(t, result.Valid)
	require.Equal(t, "invalid_outer_signature", result.Reason)
}

func TestMultiFactorRejectsSplicedFactor(t *testing.T) {
	t.Parallel()

	alice := newTestIdentity(t)
	mallory := newTestIdentity(t)

	// Alice's genuine PoW spliced into Mallory's bundle. Mallory re-signs
	// the outer envelope, but the inner factor still carries Alice's key.
	alicePoW, err := alice.CreateProofOfWork(context.Background(), 1)
	require.NoError(t, err)

	env, err := mallory.CreateMultiFactorProof(context.Background(), MultiFactorOptions{PoWDifficulty: 1})
	require.NoError(t, err)

	var payload domain.MultiFactorPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	payload.ProofOfWork = &alicePoW

	spliced, err := signEnvelope(mallory.keys, payload, domain.ProofTypeMultiFactor, mallory.now())
	require.NoError(t, err)

	result := VerifyMultiFactorProof(spliced, MultiFactorExpectation{MinDifficulty: 1})
	require.False(t, result.Valid)
	require.Equal(t, "factor_binding_mismatch", result.Reason)
}

func TestMultiFactorRejectsBadTOTP(t *testing.T) {
	t.Parallel()

	id := newTestIdentity(t)
	_, err := id.EnrollTOTP("identityd-test")
	require.NoError(t, err)

	env, err := id.CreateMultiFactorProof(context.Background(), MultiFactorOptions{IncludeTOTP: true})
	require.NoError(t, err)

	// Verifier holds a different secret than the one that produced the code.
	result := VerifyMultiFactorProof(env, MultiFactorExpectation{
		TOTPSecret: "JBSWY3DPEHPK3PXP",
	})
	require.False(t, result.Valid)
	require.Equal(t, "totp_invalid", result.Reason)
}

func TestMultiFactorTOTPRequiresEnrolment(t *testing.T) {
	t.Parallel()

	id := newTestIdentity(t)

	_, err := id.CreateMultiFactorProof(context.Background(), MultiFactorOptions{IncludeTOTP: true})
	require.ErrorIs(t, err, domain.ErrTOTPNotEnrolled)
}
