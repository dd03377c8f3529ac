package identity_test

import (
	"context"
	"testing"

	"github.com/Soulfra/agent-router-sub005/pkg/identsdk"
	"github.com/stretchr/testify/require"
)

func TestAdmissionControl(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	identityID := createIdentity(t, client)
	token := authenticate(t, client, identityID)

	t.Run("new identity lands in the new tier", func(t *testing.T) {
		decision, err := client.CheckAdmission(ctx, identsdk.AdmissionCheckRequest{
			IdentityID: identityID,
		})
		require.NoError(t, err)
		require.True(t, decision.Allowed)
		require.Equal(t, "new", decision.Tier)
		require.Equal(t, 10, decision.Hourly.Limit)
		require.Equal(t, 100, decision.Daily.Limit)
		require.Equal(t, 9, decision.Hourly.Remaining)
	})

	t.Run("explicit tier overrides the score-derived one", func(t *testing.T) {
		decision, err := client.CheckAdmission(ctx, identsdk.AdmissionCheckRequest{
			IdentityID: identityID,
			Tier:       "trusted",
		})
		require.NoError(t, err)
		require.True(t, decision.Allowed)
		require.Equal(t, "trusted", decision.Tier)
		require.Equal(t, 300, decision.Hourly.Limit)
	})

	t.Run("hourly bucket drains to rejection", func(t *testing.T) {
		drained := createIdentity(t, client)

		var decision identsdk.AdmissionDecision
		var err error
		for range 10 {
			decision, err = client.CheckAdmission(ctx, identsdk.AdmissionCheckRequest{
				IdentityID: drained,
			})
			require.NoError(t, err)
		}
		require.True(t, decision.Allowed)
		require.Zero(t, decision.Hourly.Remaining)

		decision, err = client.CheckAdmission(ctx, identsdk.AdmissionCheckRequest{
			IdentityID: drained,
		})
		require.NoError(t, err)
		require.False(t, decision.Allowed)
		require.Equal(t, "hourly_limit_exceeded", decision.Reason)
	})

	t.Run("reset refills the buckets", func(t *testing.T) {
		drained := createIdentity(t, client)
		for range 11 {
			_, err := client.CheckAdmission(ctx, identsdk.AdmissionCheckRequest{
				IdentityID: drained,
			})
			require.NoError(t, err)
		}

		require.NoError(t, client.ResetAdmission(ctx, token, identsdk.AdmissionResetRequest{
			IdentityID: drained,
		}))

		decision, err := client.CheckAdmission(ctx, identsdk.AdmissionCheckRequest{
			IdentityID: drained,
		})
		require.NoError(t, err)
		require.True(t, decision.Allowed)
		require.Equal(t, 9, decision.Hourly.Remaining)
	})

	t.Run("reset requires a bearer token", func(t *testing.T) {
		err := client.ResetAdmission(ctx, "", identsdk.AdmissionResetRequest{
			IdentityID: identityID,
		})
		var apiErr *identsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 401, apiErr.StatusCode)
	})

	t.Run("custom limits pin the identity to an override bucket", func(t *testing.T) {
		pinned := createIdentity(t, client)

		require.NoError(t, client.SetCustomAdmission(ctx, token, identsdk.AdmissionCustomRequest{
			IdentityID:      pinned,
			RequestsPerHour: 2,
			RequestsPerDay:  5,
		}))

		var decision identsdk.AdmissionDecision
		var err error
		for range 2 {
			decision, err = client.CheckAdmission(ctx, identsdk.AdmissionCheckRequest{
				IdentityID: pinned,
			})
			require.NoError(t, err)
			require.True(t, decision.Allowed)
			require.Equal(t, "custom", decision.Tier)
		}

		decision, err = client.CheckAdmission(ctx, identsdk.AdmissionCheckRequest{
			IdentityID: pinned,
		})
		require.NoError(t, err)
		require.False(t, decision.Allowed)
		require.Equal(t, 2, decision.Hourly.Limit)
	})
}
