package service

import (
	"sync"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

// ChallengeRegistry holds issued challenges between the challenge and
// verify legs of the handshake. Challenges are single-use: Take removes
// them, so a replayed session id finds nothing. Expired entries are purged
// lazily on every Issue.
type ChallengeRegistry struct {
	mu         sync.Mutex
	challenges map[string]domain.Challenge

	now func() time.Time
}

func NewChallengeRegistry() *ChallengeRegistry {
	return &ChallengeRegistry{
		challenges: make(map[string]domain.Challenge),
		now:        time.Now,
	}
}

// Issue creates and remembers a fresh challenge.
func (r *ChallengeRegistry) Issue() (domain.Challenge, error) {
	ch, err := BeginAuth()
	if err != nil {
		return domain.Challenge{}, err
	}

	now := r.now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.challenges {
		if c.Expired(now) {
			delete(r.challenges, id)
		}
	}
	r.challenges[ch.SessionID] = ch
	return ch, nil
}

// Take removes and returns the challenge for a session id. Expired
// challenges are not returned.
func (r *ChallengeRegistry) Take(sessionID string) (domain.Challenge, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.challenges[sessionID]
	if !ok {
		return domain.Challenge{}, false
	}
	delete(r.challenges, sessionID)

	if ch.Expired(r.now().UTC()) {
		return domain.Challenge{}, false
	}
	return ch, true
}
