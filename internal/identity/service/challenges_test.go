package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

func TestChallengeRegistryIssueTake(t *testing.T) {
	t.Parallel()

	r := NewChallengeRegistry()

	ch, err := r.Issue()
	require.NoError(t, err)

	got, ok := r.Take(ch.SessionID)
	require.True(t, ok)
	require.Equal(t, ch.Challenge, got.Challenge)

	// Single use.
	_, ok = r.Take(ch.SessionID)
	require.False(t, ok)
}

func TestChallengeRegistryUnknownSession(t *testing.T) {
	t.Parallel()

	r := NewChallengeRegistry()
	_, ok := r.Take("nope")
	require.False(t, ok)
}

func TestChallengeRegistryExpiry(t *testing.T) {
	t.Parallel()

	r := NewChallengeRegistry()

	ch, err := r.Issue()
	require.NoError(t, err)

	r.now = func() time.Time { return time.Now().Add(domain.ChallengeTTL + time.Second) }

	_, ok := r.Take(ch.SessionID)
	require.False(t, ok)
}
