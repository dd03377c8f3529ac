package identity_test

import (
	"context"
	"testing"

	"github.com/Soulfra/agent-router-sub005/pkg/identsdk"
	"github.com/stretchr/testify/require"
)

func TestProofOfWorkRoundTrip(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	identityID := createIdentity(t, client)

	proof, err := client.CreateProofOfWork(ctx, identityID, identsdk.PoWCreateRequest{
		Difficulty: 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, proof.Signature)

	t.Run("verifies at the produced difficulty", func(t *testing.T) {
		verdict, err := client.VerifyProofOfWork(ctx, identsdk.PoWVerifyRequest{
			MinDifficulty: 3,
			Proof:         proof,
		})
		require.NoError(t, err)
		require.True(t, verdict.Valid)
	})

	t.Run("rejects when a higher difficulty is demanded", func(t *testing.T) {
		verdict, err := client.VerifyProofOfWork(ctx, identsdk.PoWVerifyRequest{
			MinDifficulty: 5,
			Proof:         proof,
		})
		require.NoError(t, err)
		// A difficulty-3 proof only passes a 5-zero demand if the hash
		// happens to carry two extra zeros; treat either verdict as valid
		// but require a reason on rejection.
		if !verdict.Valid {
			require.Equal(t, "pow_invalid", verdict.Reason)
		}
	})

	t.Run("rejects difficulty above the service cap", func(t *testing.T) {
		_, err := client.CreateProofOfWork(ctx, identityID, identsdk.PoWCreateRequest{
			Difficulty: 9,
		})
		var apiErr *identsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 400, apiErr.StatusCode)
	})
}

func TestOwnershipProofRoundTrip(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	identityID := createIdentity(t, client)

	ch, err := client.BeginAuth(ctx)
	require.NoError(t, err)

	proof, err := client.Respond(ctx, identityID, identsdk.RespondRequest{
		Challenge: ch.Challenge,
		SessionID: ch.SessionID,
	})
	require.NoError(t, err)

	t.Run("valid against the issued challenge", func(t *testing.T) {
		verdict, err := client.VerifyOwnership(ctx, identsdk.OwnershipVerifyRequest{
			IdentityID: identityID,
			Challenge:  ch.Challenge,
			Proof:      proof,
		})
		require.NoError(t, err)
		require.True(t, verdict.Valid)
	})

	t.Run("invalid against a different challenge", func(t *testing.T) {
		other, err := client.BeginAuth(ctx)
		require.NoError(t, err)

		verdict, err := client.VerifyOwnership(ctx, identsdk.OwnershipVerifyRequest{
			IdentityID: identityID,
			Challenge:  other.Challenge,
			Proof:      proof,
		})
		require.NoError(t, err)
		require.False(t, verdict.Valid)
		require.Equal(t, "ownership_invalid", verdict.Reason)
	})
}

func TestMultiFactorRoundTrip(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	identityID := createIdentity(t, client)

	ch, err := client.BeginAuth(ctx)
	require.NoError(t, err)

	bundle, err := client.CreateMultiFactorProof(ctx, identityID, identsdk.MultiFactorCreateRequest{
		Challenge:         ch.Challenge,
		PoWDifficulty:     2,
		IncludeTimeProof:  true,
		IncludeReputation: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, bundle.Signature)

	verdict, err := client.VerifyMultiFactor(ctx, identsdk.MultiFactorVerifyRequest{
		Challenge:     ch.Challenge,
		MinDifficulty: 2,
		Proof:         bundle,
	})
	require.NoError(t, err)
	require.True(t, verdict.Valid, "bundle rejected: %s", verdict.Reason)
	require.Contains(t, verdict.Factors, "ownership")
	require.Contains(t, verdict.Factors, "pow")
	require.Contains(t, verdict.Factors, "time")
	require.Contains(t, verdict.Factors, "reputation")
}
