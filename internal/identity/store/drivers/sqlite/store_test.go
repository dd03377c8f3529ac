package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/internal/identity/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "identity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testRecord(id string) domain.Record {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return domain.Record{
		ID:         id,
		PublicKey:  []byte("0123456789abcdef0123456789abcdef"),
		SealedSeed: []byte{0x01, 0x02},
		CreatedAt:  now,
		Metadata:   map[string]string{"origin": "test"},
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("id_aaaa000000000001")
	require.NoError(t, s.Identities().CreateIdentity(ctx, rec))

	got, err := s.Identities().GetIdentity(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, rec.PublicKey, got.PublicKey)
	require.Equal(t, rec.SealedSeed, got.SealedSeed)
	require.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	require.Equal(t, rec.Metadata, got.Metadata)
	require.Nil(t, got.Reputation.FirstAction)
}

func TestCreateIdentityDuplicate(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("id_aaaa000000000002")
	require.NoError(t, s.Identities().CreateIdentity(ctx, rec))
	require.ErrorIs(t, s.Identities().CreateIdentity(ctx, rec), store.ErrAlreadyExists)
}

func TestGetIdentityNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Identities().GetIdentity(context.Background(), "id_missing000000")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestApplyAction(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("id_aaaa000000000003")
	require.NoError(t, s.Identities().CreateIdentity(ctx, rec))

	first := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	require.NoError(t, s.Identities().ApplyAction(ctx, rec.ID, 1, first))
	require.NoError(t, s.Identities().ApplyAction(ctx, rec.ID, 0, later))

	got, err := s.Identities().GetIdentity(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Reputation.Commits)
	require.Equal(t, 2, got.Reputation.VerifiedActions)
	// first_action sticks to the first write, last_action follows.
	require.True(t, first.Equal(*got.Reputation.FirstAction))
	require.True(t, later.Equal(*got.Reputation.LastAction))

	require.ErrorIs(t, s.Identities().ApplyAction(ctx, "id_missing000000", 0, first), store.ErrNotFound)
}

func TestApplyActionConcurrent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("id_aaaa000000000008")
	require.NoError(t, s.Identities().CreateIdentity(ctx, rec))

	const writers = 20
	at := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)

	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Identities().ApplyAction(ctx, rec.ID, 1, at)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.Identities().GetIdentity(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, writers, got.Reputation.VerifiedActions)
	require.Equal(t, writers, got.Reputation.Commits)
}

func TestSetTOTPSecret(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("id_aaaa000000000004")
	require.NoError(t, s.Identities().CreateIdentity(ctx, rec))

	require.NoError(t, s.Identities().SetTOTPSecret(ctx, rec.ID, "JBSWY3DPEHPK3PXP"))

	got, err := s.Identities().GetIdentity(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "JBSWY3DPEHPK3PXP", got.TOTPSecret)
}

func TestActionsRoundTripAndPrune(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("id_aaaa000000000005")
	require.NoError(t, s.Identities().CreateIdentity(ctx, rec))

	base := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	for i := range 3 {
		action := domain.ActionRecord{
			ID:         fmt.Sprintf("%026d", i),
			IdentityID: rec.ID,
			ActionType: domain.ActionTypeCodeCommit,
			Score:      i,
			Envelope: domain.SignedEnvelope{
				Data:      []byte(`{"k":1}`),
				Signature: "sig",
				PublicKey: "pub",
				Timestamp: base.UnixMilli(),
			},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, s.Actions().CreateAction(ctx, action))
	}

	actions, err := s.Actions().ListActions(ctx, rec.ID, 10)
	require.NoError(t, err)
	require.Len(t, actions, 3)
	// Newest first.
	require.Equal(t, 2, actions[0].Score)
	require.Equal(t, domain.ActionTypeCodeCommit, actions[0].ActionType)
	require.JSONEq(t, `{"k":1}`, string(actions[0].Envelope.Data))

	deleted, err := s.Actions().DeleteActionsBefore(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	actions, err = s.Actions().ListActions(ctx, rec.ID, 10)
	require.NoError(t, err)
	require.Len(t, actions, 2)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("id_aaaa000000000006")
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Identities().CreateIdentity(ctx, rec); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Identities().GetIdentity(ctx, rec.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("id_aaaa000000000007")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Identities().CreateIdentity(ctx, rec)
	})
	require.NoError(t, err)

	got, err := s.Identities().GetIdentity(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
}
