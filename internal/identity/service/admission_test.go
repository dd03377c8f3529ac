package service

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

// newTestController returns a controller with a swappable clock. The sweep
// goroutine is running; tests that exercise idle GC call SweepIdle directly.
func newTestController(t *testing.T, start time.Time) (*AdmissionController, *time.Time) {
	t.Helper()

	clock := start
	c := NewAdmissionController(slog.New(slog.DiscardHandler))
	c.now = func() time.Time { return clock }
	t.Cleanup(c.Close)
	return c, &clock
}

func TestCheckLimitNewTierHourlyCap(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, _ := newTestController(t, start)

	for i := range 10 {
		d := c.CheckLimit("id_a", domain.TierNew)
		require.True(t, d.Allowed, "request %d", i+1)
		require.Equal(t, 9-i, d.Hourly.Remaining)
	}

	d := c.CheckLimit("id_a", domain.TierNew)
	require.False(t, d.Allowed)
	require.Equal(t, domain.ReasonHourlyLimitExceeded, d.Reason)
	require.Equal(t, 0, d.Hourly.Remaining)
	require.Equal(t, 90, d.Daily.Remaining)
}

func TestCheckLimitDailyCap(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c, clock := newTestController(t, start)

	// Drain the daily budget an hour at a time so the hourly bucket keeps
	// refilling but the daily one never does.
	for range 10 {
		for range 10 {
			d := c.CheckLimit("id_a", domain.TierNew)
			require.True(t, d.Allowed)
		}
		*clock = clock.Add(time.Hour)
	}

	// 100 consumed; ~10h elapsed so the daily bucket has accrued back ~41
	// tokens. Spend those too within the same hour.
	for {
		d := c.CheckLimit("id_a", domain.TierNew)
		if !d.Allowed {
			require.Equal(t, domain.ReasonDailyLimitExceeded, d.Reason)
			require.Equal(t, 0, d.Daily.Remaining)
			return
		}
		// Hourly rejections would mean the drain loop above was wrong.
		require.NotEqual(t, domain.ReasonHourlyLimitExceeded, d.Reason)
		if d.Hourly.Remaining == 0 {
			*clock = clock.Add(time.Hour)
		}
	}
}

func TestCheckLimitContinuousRefill(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, clock := newTestController(t, start)

	for range 10 {
		require.True(t, c.CheckLimit("id_a", domain.TierNew).Allowed)
	}
	require.False(t, c.CheckLimit("id_a", domain.TierNew).Allowed)

	// 10/hour accrues one whole token every 6 minutes; no discrete reset.
	*clock = clock.Add(6 * time.Minute)
	d := c.CheckLimit("id_a", domain.TierNew)
	require.True(t, d.Allowed)

	// That single token is spent again.
	require.False(t, c.CheckLimit("id_a", domain.TierNew).Allowed)
}

func TestCheckLimitRefillClampsAtLimit(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, clock := newTestController(t, start)

	require.True(t, c.CheckLimit("id_a", domain.TierNew).Allowed)

	// A week idle does not stockpile beyond the cap.
	*clock = clock.Add(6 * 24 * time.Hour)
	d := c.CheckLimit("id_a", domain.TierNew)
	require.True(t, d.Allowed)
	require.Equal(t, 9, d.Hourly.Remaining)
	require.Equal(t, 99, d.Daily.Remaining)
}

func TestCheckLimitUnlimitedTier(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, _ := newTestController(t, start)

	for range 10_000 {
		d := c.CheckLimit("id_v", domain.TierVerified)
		require.True(t, d.Allowed)
		require.Equal(t, domain.Unlimited, d.Hourly.Remaining)
		require.Equal(t, domain.Unlimited, d.Daily.Remaining)
	}

	// Unlimited checks create no bucket at all.
	_, ok := c.Bucket("id_v")
	require.False(t, ok)
}

func TestCheckLimitTierChangeKeepsTokens(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, clock := newTestController(t, start)

	for range 10 {
		require.True(t, c.CheckLimit("id_a", domain.TierNew).Allowed)
	}
	require.False(t, c.CheckLimit("id_a", domain.TierNew).Allowed)

	// Promotion swaps the limits in place: spent tokens stay spent, so the
	// identity is still exhausted this instant even under the bigger limit.
	d := c.CheckLimit("id_a", domain.TierEstablished)
	require.False(t, d.Allowed)
	require.Equal(t, "established", d.Tier)
	require.Equal(t, 60, d.Hourly.Limit)

	// But refill now accrues at the promoted rate: 60/h is one whole token
	// per minute.
	*clock = clock.Add(time.Minute)
	d = c.CheckLimit("id_a", domain.TierEstablished)
	require.True(t, d.Allowed)
	require.Equal(t, "established", d.Tier)
}

func TestReset(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, _ := newTestController(t, start)

	for range 10 {
		require.True(t, c.CheckLimit("id_a", domain.TierNew).Allowed)
	}
	require.False(t, c.CheckLimit("id_a", domain.TierNew).Allowed)

	c.Reset("id_a")

	d := c.CheckLimit("id_a", domain.TierNew)
	require.True(t, d.Allowed)
	require.Equal(t, 9, d.Hourly.Remaining)
}

func TestSetCustomLimit(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, _ := newTestController(t, start)

	c.SetCustomLimit("id_a", 2, 5)
	override := domain.CustomTier(2, 5)

	require.True(t, c.CheckLimit("id_a", override).Allowed)
	require.True(t, c.CheckLimit("id_a", override).Allowed)

	d := c.CheckLimit("id_a", override)
	require.False(t, d.Allowed)
	require.Equal(t, domain.ReasonHourlyLimitExceeded, d.Reason)
	require.Equal(t, "custom", d.Tier)
	require.Equal(t, 2, d.Hourly.Limit)
	require.Equal(t, 5, d.Daily.Limit)
}

func TestSweepIdle(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, clock := newTestController(t, start)

	require.True(t, c.CheckLimit("id_old", domain.TierNew).Allowed)

	*clock = clock.Add(3 * 24 * time.Hour)
	require.True(t, c.CheckLimit("id_fresh", domain.TierNew).Allowed)

	// Exactly at the TTL boundary nothing is purged (strictly greater).
	purged := c.SweepIdle(start.Add(7 * 24 * time.Hour))
	require.Equal(t, 0, purged)

	purged = c.SweepIdle(start.Add(7*24*time.Hour + time.Millisecond))
	require.Equal(t, 1, purged)

	_, ok := c.Bucket("id_old")
	require.False(t, ok)
	_, ok = c.Bucket("id_fresh")
	require.True(t, ok)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c, _ := newTestController(t, start)

	for range 10 {
		require.True(t, c.CheckLimit("id_a", domain.TierNew).Allowed)
	}
	require.False(t, c.CheckLimit("id_a", domain.TierNew).Allowed)

	c.Remove("id_a")

	// Fresh bucket on the next check.
	d := c.CheckLimit("id_a", domain.TierNew)
	require.True(t, d.Allowed)
	require.Equal(t, 9, d.Hourly.Remaining)
}
