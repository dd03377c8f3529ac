package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/internal/identity/store/drivers/sqlite"
)

func newTestIdentityService(t *testing.T) *IdentityService {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "identity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &IdentityService{
		Store:          s,
		Logger:         slog.New(slog.DiscardHandler),
		SealPassphrase: "test-passphrase",
		TOTPIssuer:     "identityd-test",
	}
}

func TestServiceRecordActionPersistsLedger(t *testing.T) {
	t.Parallel()

	svc := newTestIdentityService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	action, err := svc.RecordAction(ctx, id.ID, domain.ActionTypeCodeCommit, map[string]any{"repo": "example"})
	require.NoError(t, err)
	require.Equal(t, id.ID, action.IdentityID)
	require.True(t, VerifyEnvelope(action.Envelope))

	_, err = svc.RecordAction(ctx, id.ID, "code_review", nil)
	require.NoError(t, err)

	rec, err := svc.Get(ctx, id.ID)
	require.NoError(t, err)
	require.Equal(t, 2, rec.Reputation.VerifiedActions)
	require.Equal(t, 1, rec.Reputation.Commits)
	require.NotNil(t, rec.Reputation.FirstAction)
	require.NotNil(t, rec.Reputation.LastAction)

	actions, err := svc.ListActions(ctx, id.ID, 10)
	require.NoError(t, err)
	require.Len(t, actions, 2)
}

func TestServiceRecordActionConcurrent(t *testing.T) {
	t.Parallel()

	svc := newTestIdentityService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	// Every concurrent call must land its own increment; overlapping
	// read-modify-write cycles that collapse 20 actions into one are the
	// failure mode guarded against here.
	const callers = 20
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordAction(ctx, id.ID, domain.ActionTypeCodeCommit, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rec, err := svc.Get(ctx, id.ID)
	require.NoError(t, err)
	require.Equal(t, callers, rec.Reputation.VerifiedActions)
	require.Equal(t, callers, rec.Reputation.Commits)

	actions, err := svc.ListActions(ctx, id.ID, 100)
	require.NoError(t, err)
	require.Len(t, actions, callers)
}
