package service

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

const (
	hourlyWindow = time.Hour
	dailyWindow  = 24 * time.Hour

	// bucketIdleTTL is how long a bucket may sit unused before the sweep
	// purges it, measured from the last admission check regardless of the
	// remaining token level.
	bucketIdleTTL = 7 * 24 * time.Hour

	// sweepInterval is how often the idle sweep runs.
	sweepInterval = time.Hour
)

// bucket is the per-identity dual token bucket. Tokens are fractional
// internally (continuous refill) but consumed as whole units.
type bucket struct {
	tier domain.Tier

	hourlyTokens     float64
	dailyTokens      float64
	hourlyLastRefill time.Time
	dailyLastRefill  time.Time

	totalRequests int64
	createdAt     time.Time
	lastRequestAt time.Time
}

// AdmissionController gates operations per identity with a dual
// hourly/daily token bucket. It is an explicit instance with its own sweep
// goroutine, injected where needed so tests can run isolated controllers.
//
// CheckLimit is a read-refill-compare-decrement sequence; the controller's
// mutex serializes concurrent checks so two requests for the same identity
// can never both observe a last remaining token.
type AdmissionController struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	logger *slog.Logger
	now    func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewAdmissionController creates a controller and starts its hourly idle
// sweep. Call Close to stop the sweep.
func NewAdmissionController(logger *slog.Logger) *AdmissionController {
	if logger == nil {
		logger = slog.Default()
	}
	c := &AdmissionController{
		buckets: make(map[string]*bucket),
		logger:  logger,
		now:     time.Now,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go c.runSweep()
	return c
}

// Close stops the background sweep. The controller remains usable for
// checks afterwards; only the periodic GC stops.
func (c *AdmissionController) Close() {
	close(c.stopCh)
	<-c.doneCh
}

// CheckLimit decides whether one operation is admitted for the identity
// under the supplied tier. Unlimited tiers short-circuit to allow without
// any bucket accounting. Otherwise both sub-buckets are refilled by elapsed
// time, then both must hold at least one whole token; on allow both are
// decremented together.
func (c *AdmissionController) CheckLimit(identityID string, tier domain.Tier) domain.Decision {
	if tier.IsUnlimited() {
		return domain.Decision{
			Allowed: true,
			Tier:    tier.Name,
			Hourly:  domain.Window{Remaining: domain.Unlimited, Limit: domain.Unlimited},
			Daily:   domain.Window{Remaining: domain.Unlimited, Limit: domain.Unlimited},
		}
	}

	now := c.now().UTC()

	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.buckets[identityID]
	if !ok {
		b = &bucket{
			tier:             tier,
			hourlyTokens:     float64(tier.RequestsPerHour),
			dailyTokens:      float64(tier.RequestsPerDay),
			hourlyLastRefill: now,
			dailyLastRefill:  now,
			createdAt:        now,
			lastRequestAt:    now,
		}
		c.buckets[identityID] = b
	}

	// Tier change swaps the limits in place without resetting current
	// token counts; the min() in the next refill re-clamps any surplus.
	if b.tier.Name != tier.Name {
		c.logger.Debug("admission tier changed",
			"identity_id", identityID, "from", b.tier.Name, "to", tier.Name)
		b.tier = tier
	}

	b.refill(now)
	b.lastRequestAt = now

	if b.hourlyTokens < 1 {
		return c.rejectLocked(b, domain.ReasonHourlyLimitExceeded)
	}
	if b.dailyTokens < 1 {
		return c.rejectLocked(b, domain.ReasonDailyLimitExceeded)
	}

	b.hourlyTokens--
	b.dailyTokens--
	b.totalRequests++

	return domain.Decision{
		Allowed: true,
		Tier:    b.tier.Name,
		Hourly:  b.hourlyWindow(),
		Daily:   b.dailyWindow(),
	}
}

func (c *AdmissionController) rejectLocked(b *bucket, reason string) domain.Decision {
	return domain.Decision{
		Allowed: false,
		Reason:  reason,
		Tier:    b.tier.Name,
		Hourly:  b.hourlyWindow(),
		Daily:   b.dailyWindow(),
	}
}

// Reset refills both sub-buckets to full immediately.
func (c *AdmissionController) Reset(identityID string) {
	now := c.now().UTC()

	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.buckets[identityID]
	if !ok {
		return
	}
	b.hourlyTokens = float64(b.tier.RequestsPerHour)
	b.dailyTokens = float64(b.tier.RequestsPerDay)
	b.hourlyLastRefill = now
	b.dailyLastRefill = now
}

// SetCustomLimit installs an operator override bucket with a custom tier,
// replacing any existing bucket for the identity.
func (c *AdmissionController) SetCustomLimit(identityID string, hourly, daily int) {
	now := c.now().UTC()
	tier := domain.CustomTier(hourly, daily)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.buckets[identityID] = &bucket{
		tier:             tier,
		hourlyTokens:     float64(hourly),
		dailyTokens:      float64(daily),
		hourlyLastRefill: now,
		dailyLastRefill:  now,
		createdAt:        now,
		lastRequestAt:    now,
	}
}

// Override returns the operator-set custom tier for an identity, if one is
// installed. Callers use it to pin a custom bucket instead of swapping it
// back to a score-derived tier on the next check.
func (c *AdmissionController) Override(identityID string) (domain.Tier, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.buckets[identityID]
	if !ok || b.tier.Name != "custom" {
		return domain.Tier{}, false
	}
	return b.tier, true
}

// Remove deletes the bucket; the next check creates a fresh one.
func (c *AdmissionController) Remove(identityID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.buckets, identityID)
}

// Bucket returns a read-only snapshot of an identity's bucket.
func (c *AdmissionController) Bucket(identityID string) (domain.BucketState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.buckets[identityID]
	if !ok {
		return domain.BucketState{}, false
	}
	return domain.BucketState{
		IdentityID:    identityID,
		Tier:          b.tier.Name,
		HourlyTokens:  b.hourlyTokens,
		DailyTokens:   b.dailyTokens,
		TotalRequests: b.totalRequests,
		CreatedAt:     b.createdAt,
		LastRequestAt: b.lastRequestAt,
	}, true
}

// SweepIdle purges buckets whose last admission check is strictly more
// than the idle TTL ago, regardless of remaining tokens. Returns the purge
// count.
func (c *AdmissionController) SweepIdle(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	purged := 0
	for id, b := range c.buckets {
		if now.Sub(b.lastRequestAt) > bucketIdleTTL {
			delete(c.buckets, id)
			purged++
		}
	}
	return purged
}

func (c *AdmissionController) runSweep() {
	defer close(c.doneCh)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if purged := c.SweepIdle(c.now().UTC()); purged > 0 {
				c.logger.Info("admission sweep purged idle buckets", "purged", purged)
			}
		case <-c.stopCh:
			return
		}
	}
}

// refill applies continuous elapsed-time accrual to both sub-buckets:
// tokens = min(limit, tokens + elapsed * limit/window).
func (b *bucket) refill(now time.Time) {
	b.hourlyTokens = refillTokens(b.hourlyTokens, b.tier.RequestsPerHour, hourlyWindow, b.hourlyLastRefill, now)
	b.hourlyLastRefill = now

	b.dailyTokens = refillTokens(b.dailyTokens, b.tier.RequestsPerDay, dailyWindow, b.dailyLastRefill, now)
	b.dailyLastRefill = now
}

func refillTokens(tokens float64, limit int, window time.Duration, lastRefill, now time.Time) float64 {
	elapsed := now.Sub(lastRefill)
	if elapsed < 0 {
		elapsed = 0
	}
	accrued := float64(elapsed.Milliseconds()) * float64(limit) / float64(window.Milliseconds())
	return math.Min(float64(limit), tokens+accrued)
}

func (b *bucket) hourlyWindow() domain.Window {
	return domain.Window{
		Remaining: int(b.hourlyTokens),
		Limit:     b.tier.RequestsPerHour,
		ResetAt:   b.hourlyLastRefill.Add(hourlyWindow),
	}
}

func (b *bucket) dailyWindow() domain.Window {
	return domain.Window{
		Remaining: int(b.dailyTokens),
		Limit:     b.tier.RequestsPerDay,
		ResetAt:   b.dailyLastRefill.Add(dailyWindow),
	}
}
