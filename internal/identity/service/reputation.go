package service

import "time"

// Reputation scoring weights. The score is a sum of three capped terms:
// account age (max 20), verified actions (max 40) and code commits
// (max 40), clamped to [0,100].
const (
	ageScoreCap        = 20
	agePerMonth        = 5
	actionsScoreCap    = 40
	actionScoreEach    = 2
	commitsScoreCap    = 40
	reputationScoreMax = 100
)

// ReputationScore maps ledger counters to a 0-100 score. Pure function:
// the score is always recomputed from the ledger, never stored.
func ReputationScore(ageDays, verifiedActions, commits int) int {
	score := min(ageScoreCap, (ageDays/30)*agePerMonth) +
		min(actionsScoreCap, verifiedActions*actionScoreEach) +
		min(commitsScoreCap, commits)

	if score < 0 {
		return 0
	}
	if score > reputationScoreMax {
		return reputationScoreMax
	}
	return score
}

// AccountAgeDays returns whole days elapsed between createdAt and now,
// never negative.
func AccountAgeDays(createdAt, now time.Time) int {
	days := int(now.Sub(createdAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
