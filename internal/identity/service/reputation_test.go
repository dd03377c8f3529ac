package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReputationScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                      string
		ageDays, actions, commits int
		want                      int
	}{
		{"fresh identity", 0, 0, 0, 0},
		{"under a month has no age points", 29, 0, 0, 0},
		{"one month", 30, 0, 0, 5},
		{"age caps at 20", 3650, 0, 0, 20},
		{"actions at two points each", 0, 7, 0, 14},
		{"actions cap at 40", 0, 500, 0, 40},
		{"commits one point each", 0, 0, 25, 25},
		{"commits cap at 40", 0, 0, 400, 40},
		{"all terms capped is 100", 3650, 500, 400, 100},
		{"mixed", 90, 10, 12, 15 + 20 + 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ReputationScore(tt.ageDays, tt.actions, tt.commits))
		})
	}
}

func TestAccountAgeDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	require.Equal(t, 0, AccountAgeDays(now, now))
	require.Equal(t, 0, AccountAgeDays(now.Add(-23*time.Hour), now))
	require.Equal(t, 1, AccountAgeDays(now.Add(-25*time.Hour), now))
	require.Equal(t, 365, AccountAgeDays(now.Add(-365*24*time.Hour), now))

	// Clock skew never yields a negative age.
	require.Equal(t, 0, AccountAgeDays(now.Add(time.Hour), now))
}
