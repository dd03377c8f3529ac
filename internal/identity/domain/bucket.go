package domain

import "time"

// Admission decision reasons.
const (
	ReasonHourlyLimitExceeded = "hourly_limit_exceeded"
	ReasonDailyLimitExceeded  = "daily_limit_exceeded"
)

// Window reports the state of one sub-bucket in an admission decision.
// Remaining is whole tokens; fractional accrual is internal.
type Window struct {
	Remaining int       `json:"remaining"`
	Limit     int       `json:"limit"` // -1 for unlimited
	ResetAt   time.Time `json:"reset_at"`
}

// Decision is the structured outcome of an admission check. A rejection is
// a normal decision, not an error.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Tier    string `json:"tier"`
	Hourly  Window `json:"hourly"`
	Daily   Window `json:"daily"`
}

// BucketState is a read-only snapshot of one identity's bucket, exposed for
// inspection and tests.
type BucketState struct {
	IdentityID    string    `json:"identity_id"`
	Tier          string    `json:"tier"`
	HourlyTokens  float64   `json:"hourly_tokens"`
	DailyTokens   float64   `json:"daily_tokens"`
	TotalRequests int64     `json:"total_requests"`
	CreatedAt     time.Time `json:"created_at"`
	LastRequestAt time.Time `json:"last_request_at"`
}
